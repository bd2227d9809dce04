package ml

import (
	"errors"
	"fmt"
)

const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

var ErrInvalidScaler = errors.New("invalid scaler artifact")

// Scaler applies the normalisation fitted offline. It is immutable after load.
type Scaler struct {
	kind  string
	mean  []float64
	scale []float64
	min   []float64
}

type scalerArtifact struct {
	Kind  string    `json:"kind"`
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
	Min   []float64 `json:"min"`
}

func newScaler(a scalerArtifact) (*Scaler, error) {
	if len(a.Scale) != FeatureCount {
		return nil, fmt.Errorf("%w: scale has %d values, want %d", ErrInvalidScaler, len(a.Scale), FeatureCount)
	}

	s := &Scaler{kind: a.Kind, scale: append([]float64(nil), a.Scale...)}
	switch a.Kind {
	case ScalerStandard:
		if len(a.Mean) != FeatureCount {
			return nil, fmt.Errorf("%w: mean has %d values, want %d", ErrInvalidScaler, len(a.Mean), FeatureCount)
		}
		s.mean = append([]float64(nil), a.Mean...)
		for i, sc := range s.scale {
			// zero-variance columns are left unscaled, as the fitting library does
			if sc == 0 {
				s.scale[i] = 1
			}
		}
	case ScalerMinMax:
		if len(a.Min) != FeatureCount {
			return nil, fmt.Errorf("%w: min has %d values, want %d", ErrInvalidScaler, len(a.Min), FeatureCount)
		}
		s.min = append([]float64(nil), a.Min...)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidScaler, a.Kind)
	}
	return s, nil
}

func (s *Scaler) Kind() string {
	return s.kind
}

func (s *Scaler) Transform(v FeatureVector) FeatureVector {
	var out FeatureVector
	for i := range v {
		if s.kind == ScalerMinMax {
			out[i] = v[i]*s.scale[i] + s.min[i]
			continue
		}
		out[i] = (v[i] - s.mean[i]) / s.scale[i]
	}
	return out
}
