package ml

import (
	"math"
	"sort"
)

// Career is one ranked prediction. Confidence is a percentage with 2 decimals.
type Career struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// TopK returns the k most probable labels, highest first. Equal probabilities
// keep index order. Fewer than k entries are returned when probs is shorter.
func TopK(probs []float64, labels *LabelDecoder, k int) ([]Career, error) {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	if k < 0 {
		k = 0
	}

	out := make([]Career, 0, k)
	for _, i := range idx[:k] {
		label, err := labels.Decode(i)
		if err != nil {
			return nil, err
		}
		out = append(out, Career{Label: label, Confidence: confidence(probs[i])})
	}
	return out, nil
}

func confidence(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return math.Round(p*100*100) / 100
}
