package ml

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	ScalerFile       = "scaler.json"
	ClassifierFile   = "classifier.json"
	LabelEncoderFile = "label_encoder.json"
)

var ErrArtifact = errors.New("model artifact")

//go:embed schema/*.json
var schemas embed.FS

// Paths locates the three artifacts. Empty fields fall back to Dir + default name.
type Paths struct {
	Dir          string
	Scaler       string
	Classifier   string
	LabelEncoder string
}

func (p Paths) resolve() Paths {
	dir := strings.TrimSpace(p.Dir)
	if dir == "" {
		dir = "model"
	}
	pick := func(v, name string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return filepath.Join(dir, name)
	}
	return Paths{
		Dir:          dir,
		Scaler:       pick(p.Scaler, ScalerFile),
		Classifier:   pick(p.Classifier, ClassifierFile),
		LabelEncoder: pick(p.LabelEncoder, LabelEncoderFile),
	}
}

// Load reads and validates all artifacts and wires them into a Predictor.
func Load(p Paths) (*Predictor, error) {
	p = p.resolve()

	var sa scalerArtifact
	if err := readArtifact(p.Scaler, "schema/scaler.json", &sa); err != nil {
		return nil, err
	}
	var ca classifierArtifact
	if err := readArtifact(p.Classifier, "schema/classifier.json", &ca); err != nil {
		return nil, err
	}
	var la labelArtifact
	if err := readArtifact(p.LabelEncoder, "schema/label_encoder.json", &la); err != nil {
		return nil, err
	}

	scaler, err := newScaler(sa)
	if err != nil {
		return nil, err
	}
	clf, err := newClassifier(ca)
	if err != nil {
		return nil, err
	}
	labels, err := newLabelDecoder(la)
	if err != nil {
		return nil, err
	}

	return NewPredictor(scaler, clf, labels)
}

func readArtifact(path, schemaName string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrArtifact, path, err)
	}

	if err := validateArtifact(schemaName, b); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArtifact, path, err)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrArtifact, path, err)
	}
	return nil
}

func validateArtifact(schemaName string, doc []byte) error {
	raw, err := schemas.ReadFile(schemaName)
	if err != nil {
		return err
	}

	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(raw), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}
