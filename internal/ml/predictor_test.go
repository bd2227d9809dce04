package ml

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) *Predictor {
	t.Helper()

	p, err := Load(Paths{Dir: "testdata"})
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return p
}

func TestPredict_TechnicalProfileRanksSoftwareFirst(t *testing.T) {
	p := loadFixture(t)

	top, err := p.Predict(SurveyResponse{
		"math_interest":        9,
		"science_interest":     8,
		"literature_interest":  2,
		"coding_interest":      9,
		"teamwork":             5,
		"creativity":           6,
		"helping_interest":     3,
		"leadership":           4,
		"travel_interest":      2,
		"stable_job_interest":  7,
		"business_interest":    3,
		"communication_skills": 6,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []string{"Software Engineer", "Doctor", "Artist"}
	if len(top) != len(want) {
		t.Fatalf("expected %d careers, got %d", len(want), len(top))
	}
	for i, w := range want {
		if top[i].Label != w {
			t.Fatalf("rank %d: expected %s, got %s", i, w, top[i].Label)
		}
	}
}

func TestPredict_Invariants(t *testing.T) {
	p := loadFixture(t)
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 200; n++ {
		s := SurveyResponse{}
		for _, col := range FeatureColumns {
			s[col] = rng.Intn(11)
		}

		top, err := p.Predict(s)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(top) != TopCareers {
			t.Fatalf("expected %d careers, got %d", TopCareers, len(top))
		}

		seen := map[string]struct{}{}
		for i, c := range top {
			if _, ok := seen[c.Label]; ok {
				t.Fatalf("duplicate label %s", c.Label)
			}
			seen[c.Label] = struct{}{}

			if c.Confidence < 0 || c.Confidence > 100 {
				t.Fatalf("confidence out of range: %v", c.Confidence)
			}
			if scaled := c.Confidence * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
				t.Fatalf("confidence not rounded to 2 decimals: %v", c.Confidence)
			}
			if i > 0 && c.Confidence > top[i-1].Confidence {
				t.Fatalf("confidence increases at %d: %v > %v", i, c.Confidence, top[i-1].Confidence)
			}
		}
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := loadFixture(t)
	s := SurveyResponse{"coding_interest": 7, "travel_interest": 9, "creativity": 3}

	first := p.Probabilities(s)
	for i := 0; i < 10; i++ {
		again := p.Probabilities(s)
		for j := range first {
			if math.Float64bits(first[j]) != math.Float64bits(again[j]) {
				t.Fatalf("run %d differs at %d: %v vs %v", i, j, first[j], again[j])
			}
		}
	}
}

func TestProbabilities_SumToOne(t *testing.T) {
	p := loadFixture(t)

	var sum float64
	for _, v := range p.Probabilities(SurveyResponse{}) {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected probabilities to sum to 1, got %v", sum)
	}
}

func TestEncode_MissingFieldsDefaultToZero(t *testing.T) {
	v := Encode(SurveyResponse{"coding_interest": 4, "communication_skills": 10, "unknown": 99})

	for i, col := range FeatureColumns {
		want := 0.0
		switch col {
		case "coding_interest":
			want = 4
		case "communication_skills":
			want = 10
		}
		if v[i] != want {
			t.Fatalf("%s: expected %v, got %v", col, want, v[i])
		}
	}
}

func TestTopK_TiesKeepIndexOrder(t *testing.T) {
	labels, err := newLabelDecoder(labelArtifact{Classes: []string{"a", "b", "c", "d"}})
	if err != nil {
		t.Fatalf("labels: %v", err)
	}

	top, err := TopK([]float64{0.2, 0.3, 0.3, 0.2}, labels, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := []string{top[0].Label, top[1].Label, top[2].Label}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if top[0].Confidence != 30 {
		t.Fatalf("expected confidence 30, got %v", top[0].Confidence)
	}
}

func TestTopK_FewerClassesThanK(t *testing.T) {
	labels, _ := newLabelDecoder(labelArtifact{Classes: []string{"a", "b"}})

	top, err := TopK([]float64{0.4, 0.6}, labels, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(top) != 2 || top[0].Label != "b" {
		t.Fatalf("unexpected result: %+v", top)
	}
}

func TestConfidence_RoundsAndClamps(t *testing.T) {
	cases := map[float64]float64{
		0.123456: 12.35,
		1.2:      100,
		-0.1:     0,
		0.99999:  100,
	}
	for in, want := range cases {
		if got := confidence(in); got != want {
			t.Fatalf("confidence(%v): expected %v, got %v", in, want, got)
		}
	}
}

func TestScaler_MinMax(t *testing.T) {
	sa := scalerArtifact{Kind: ScalerMinMax, Scale: make([]float64, FeatureCount), Min: make([]float64, FeatureCount)}
	for i := range sa.Scale {
		sa.Scale[i] = 0.1
		sa.Min[i] = -0.5
	}
	s, err := newScaler(sa)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out := s.Transform(Encode(SurveyResponse{"math_interest": 10}))
	if math.Abs(out[0]-0.5) > 1e-12 || math.Abs(out[1]+0.5) > 1e-12 {
		t.Fatalf("unexpected transform: %v", out)
	}
}

func TestClassifier_HiddenLayer(t *testing.T) {
	hidden := make([][]float64, 2)
	for i := range hidden {
		hidden[i] = make([]float64, FeatureCount)
	}
	hidden[0][0] = 1  // math
	hidden[1][0] = -1 // relu zeroes this for positive math

	clf, err := newClassifier(classifierArtifact{
		InputDim: FeatureCount,
		Layers: []layerArtifact{
			{Weights: hidden, Bias: []float64{0, 0}, Activation: "relu"},
			{Weights: [][]float64{{1, 0}, {0, 1}, {0, 0}}, Bias: []float64{0, 0, 0}, Activation: "softmax"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	probs := clf.Predict(Encode(SurveyResponse{"math_interest": 3}))
	if len(probs) != 3 {
		t.Fatalf("expected 3 probabilities, got %d", len(probs))
	}
	if !(probs[0] > probs[1] && probs[1] == probs[2]) {
		t.Fatalf("unexpected distribution: %v", probs)
	}
}

func TestNewClassifier_RejectsNonSoftmaxOutput(t *testing.T) {
	_, err := newClassifier(classifierArtifact{
		InputDim: FeatureCount,
		Layers:   []layerArtifact{{Weights: [][]float64{make([]float64, FeatureCount)}, Bias: []float64{0}, Activation: "linear"}},
	})
	if !errors.Is(err, ErrInvalidClassifier) {
		t.Fatalf("expected ErrInvalidClassifier, got %v", err)
	}
}

func TestLoad_MissingArtifactFails(t *testing.T) {
	_, err := Load(Paths{Dir: t.TempDir()})
	if !errors.Is(err, ErrArtifact) {
		t.Fatalf("expected ErrArtifact, got %v", err)
	}
}

func TestLoad_SchemaViolationFails(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{ClassifierFile, LabelEncoderFile} {
		b, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("read fixture: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, ScalerFile), []byte(`{"kind":"robust","scale":[1]}`), 0o644); err != nil {
		t.Fatalf("write scaler: %v", err)
	}

	_, err := Load(Paths{Dir: dir})
	if !errors.Is(err, ErrArtifact) {
		t.Fatalf("expected ErrArtifact, got %v", err)
	}
}

func TestNewPredictor_TooFewClasses(t *testing.T) {
	scaler, _ := newScaler(scalerArtifact{Kind: ScalerStandard, Mean: make([]float64, FeatureCount), Scale: make([]float64, FeatureCount)})
	clf, err := newClassifier(classifierArtifact{
		InputDim: FeatureCount,
		Layers: []layerArtifact{{
			Weights:    [][]float64{make([]float64, FeatureCount), make([]float64, FeatureCount)},
			Bias:       []float64{0, 0},
			Activation: "softmax",
		}},
	})
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}
	labels, _ := newLabelDecoder(labelArtifact{Classes: []string{"a", "b"}})

	_, err = NewPredictor(scaler, clf, labels)
	if !errors.Is(err, ErrTooFewClasses) {
		t.Fatalf("expected ErrTooFewClasses, got %v", err)
	}
}

func TestNewLabelDecoder_StoresTrimmedClasses(t *testing.T) {
	labels, err := newLabelDecoder(labelArtifact{Classes: []string{"  Doctor ", "Lawyer\n"}})
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	got, _ := labels.Decode(0)
	if got != "Doctor" {
		t.Fatalf("expected trimmed class, got %q", got)
	}
	if c := labels.Classes(); c[1] != "Lawyer" {
		t.Fatalf("expected trimmed class, got %q", c[1])
	}
}

func TestNewLabelDecoder_RejectsInvalidClasses(t *testing.T) {
	long := strings.Repeat("é", MaxLabelLength+1)
	cases := map[string][]string{
		"empty":     {"a", " "},
		"duplicate": {"a", " a"},
		"too long":  {"a", long},
	}
	for name, classes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newLabelDecoder(labelArtifact{Classes: classes})
			if !errors.Is(err, ErrInvalidLabels) {
				t.Fatalf("expected ErrInvalidLabels, got %v", err)
			}
		})
	}

	if _, err := newLabelDecoder(labelArtifact{Classes: []string{strings.Repeat("é", MaxLabelLength)}}); err != nil {
		t.Fatalf("label at the column width should load: %v", err)
	}
}
