package ml

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidLabels = errors.New("invalid label encoder artifact")

// MaxLabelLength matches the width of the career_choice columns.
const MaxLabelLength = 100

// LabelDecoder maps classifier output indices to career names.
type LabelDecoder struct {
	classes []string
}

type labelArtifact struct {
	Classes []string `json:"classes"`
}

func newLabelDecoder(a labelArtifact) (*LabelDecoder, error) {
	seen := make(map[string]struct{}, len(a.Classes))
	classes := make([]string, 0, len(a.Classes))
	for i, c := range a.Classes {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: empty class at %d", ErrInvalidLabels, i)
		}
		if utf8.RuneCountInString(c) > MaxLabelLength {
			return nil, fmt.Errorf("%w: class at %d longer than %d characters", ErrInvalidLabels, i, MaxLabelLength)
		}
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrInvalidLabels, c)
		}
		seen[c] = struct{}{}
		classes = append(classes, c)
	}
	return &LabelDecoder{classes: classes}, nil
}

func (d *LabelDecoder) Len() int {
	return len(d.classes)
}

func (d *LabelDecoder) Decode(idx int) (string, error) {
	if idx < 0 || idx >= len(d.classes) {
		return "", fmt.Errorf("%w: index %d out of range", ErrInvalidLabels, idx)
	}
	return d.classes[idx], nil
}

func (d *LabelDecoder) Classes() []string {
	return append([]string(nil), d.classes...)
}
