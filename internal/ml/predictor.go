package ml

import (
	"errors"
	"fmt"
)

// TopCareers is the number of careers kept per assessment.
const TopCareers = 3

var ErrTooFewClasses = errors.New("model must know at least 3 careers")

// Predictor bundles the read-only artifacts. Safe for concurrent use.
type Predictor struct {
	scaler     *Scaler
	classifier *Classifier
	labels     *LabelDecoder
}

func NewPredictor(scaler *Scaler, clf *Classifier, labels *LabelDecoder) (*Predictor, error) {
	if scaler == nil || clf == nil || labels == nil {
		return nil, fmt.Errorf("%w: missing component", ErrArtifact)
	}
	if clf.Classes() != labels.Len() {
		return nil, fmt.Errorf("%w: classifier has %d outputs, label encoder %d classes", ErrArtifact, clf.Classes(), labels.Len())
	}
	if labels.Len() < TopCareers {
		return nil, ErrTooFewClasses
	}
	return &Predictor{scaler: scaler, classifier: clf, labels: labels}, nil
}

// Probabilities returns the class distribution for the survey.
func (p *Predictor) Probabilities(s SurveyResponse) []float64 {
	return p.classifier.Predict(p.scaler.Transform(Encode(s)))
}

// Predict returns the top 3 careers for the survey.
func (p *Predictor) Predict(s SurveyResponse) ([]Career, error) {
	return TopK(p.Probabilities(s), p.labels, TopCareers)
}

func (p *Predictor) Labels() []string {
	return p.labels.Classes()
}
