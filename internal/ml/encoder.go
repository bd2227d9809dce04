package ml

// FeatureColumns is the column order the offline artifacts were trained on.
// Changing it silently corrupts predictions.
var FeatureColumns = [FeatureCount]string{
	"math_interest",
	"science_interest",
	"literature_interest",
	"coding_interest",
	"teamwork",
	"creativity",
	"helping_interest",
	"leadership",
	"travel_interest",
	"stable_job_interest",
	"business_interest",
	"communication_skills",
}

const FeatureCount = 12

// SurveyResponse holds the raw answers keyed by FeatureColumns name.
type SurveyResponse map[string]int

type FeatureVector [FeatureCount]float64

// Encode maps survey answers onto the fixed feature order. Missing answers are 0.
func Encode(s SurveyResponse) FeatureVector {
	var v FeatureVector
	for i, col := range FeatureColumns {
		v[i] = float64(s[col])
	}
	return v
}

// Scores returns the answers in column order, missing ones as 0.
func (s SurveyResponse) Scores() [FeatureCount]int {
	var out [FeatureCount]int
	for i, col := range FeatureColumns {
		out[i] = s[col]
	}
	return out
}

func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}
