package ml

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidClassifier = errors.New("invalid classifier artifact")

type layer struct {
	weights    [][]float64 // [out][in]
	bias       []float64
	activation string
}

// Classifier is a dense feed-forward network whose last layer is a softmax.
type Classifier struct {
	inputDim int
	layers   []layer
}

type classifierArtifact struct {
	InputDim int             `json:"input_dim"`
	Layers   []layerArtifact `json:"layers"`
}

type layerArtifact struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

func newClassifier(a classifierArtifact) (*Classifier, error) {
	if a.InputDim != FeatureCount {
		return nil, fmt.Errorf("%w: input_dim %d, want %d", ErrInvalidClassifier, a.InputDim, FeatureCount)
	}
	if len(a.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidClassifier)
	}

	c := &Classifier{inputDim: a.InputDim}
	in := a.InputDim
	for i, la := range a.Layers {
		if len(la.Weights) == 0 || len(la.Weights) != len(la.Bias) {
			return nil, fmt.Errorf("%w: layer %d has %d rows and %d biases", ErrInvalidClassifier, i, len(la.Weights), len(la.Bias))
		}
		for r, row := range la.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("%w: layer %d row %d has %d weights, want %d", ErrInvalidClassifier, i, r, len(row), in)
			}
		}
		if !knownActivation(la.Activation) {
			return nil, fmt.Errorf("%w: layer %d activation %q", ErrInvalidClassifier, i, la.Activation)
		}
		c.layers = append(c.layers, layer{weights: la.Weights, bias: la.Bias, activation: la.Activation})
		in = len(la.Weights)
	}

	if c.layers[len(c.layers)-1].activation != "softmax" {
		return nil, fmt.Errorf("%w: last layer must be softmax", ErrInvalidClassifier)
	}
	return c, nil
}

// Classes returns the width of the output distribution.
func (c *Classifier) Classes() int {
	return len(c.layers[len(c.layers)-1].bias)
}

// Predict runs a forward pass and returns one probability per class.
func (c *Classifier) Predict(v FeatureVector) []float64 {
	x := v.Slice()
	for _, l := range c.layers {
		z := make([]float64, len(l.weights))
		for o, row := range l.weights {
			sum := l.bias[o]
			for i, w := range row {
				sum += w * x[i]
			}
			z[o] = sum
		}
		x = activate(l.activation, z)
	}
	return x
}

func knownActivation(name string) bool {
	switch name {
	case "relu", "tanh", "sigmoid", "linear", "softmax":
		return true
	}
	return false
}

func activate(name string, z []float64) []float64 {
	switch name {
	case "relu":
		for i, v := range z {
			if v < 0 {
				z[i] = 0
			}
		}
	case "tanh":
		for i, v := range z {
			z[i] = math.Tanh(v)
		}
	case "sigmoid":
		for i, v := range z {
			z[i] = 1 / (1 + math.Exp(-v))
		}
	case "softmax":
		return softmax(z)
	}
	return z
}

func softmax(z []float64) []float64 {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	var sum float64
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
