// Package enricher turns predicted career labels into generated career
// descriptions, degrading to a fixed placeholder whenever generation fails.
package enricher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"dhruvtara/internal/domain/career"
	"dhruvtara/internal/pkg/logger"
	"dhruvtara/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ContentGenerator is satisfied by *gemini.Generator.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type Enricher struct {
	generator ContentGenerator
	logger    *zap.Logger
	metrics   *metrics.Metrics
	maxLogLen int
}

// New builds an Enricher. A nil generator serves fallbacks only.
func New(generator ContentGenerator, log *zap.Logger, m *metrics.Metrics, maxLogLength int) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Enricher{
		generator: generator,
		logger:    logger.OrNop(log),
		metrics:   m,
		maxLogLen: maxLogLength,
	}
}

// Enrich never fails: any generation or parse error yields career.Fallback.
func (e *Enricher) Enrich(ctx context.Context, label string) career.Detail {
	start := time.Now()
	detail, err := e.generate(ctx, label)
	if err != nil {
		e.logger.Warn("career enrichment failed, using fallback",
			zap.String("career", label),
			zap.Error(err),
		)
		e.metrics.ObserveEnrichment(metrics.OutcomeFallback, time.Since(start))
		return career.Fallback(label)
	}
	e.metrics.ObserveEnrichment(metrics.OutcomeOK, time.Since(start))
	return detail
}

// EnrichAll enriches labels one after another, preserving order.
func (e *Enricher) EnrichAll(ctx context.Context, labels []string) []career.Detail {
	out := make([]career.Detail, 0, len(labels))
	for _, label := range labels {
		out = append(out, e.Enrich(ctx, label))
	}
	return out
}

func (e *Enricher) generate(ctx context.Context, label string) (career.Detail, error) {
	if e.generator == nil {
		return career.Detail{}, fmt.Errorf("no generator configured")
	}

	prompt := buildPrompt(label)
	e.logger.Debug("gemini generate content request",
		zap.String("career", label),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return career.Detail{}, err
	}

	e.logger.Debug("gemini generate content response",
		zap.String("career", label),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseResponse(raw, label)
}

func buildPrompt(label string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Describe the career \"{{CAREER}}\" as JSON.\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{CAREER}}", label)
}

func parseResponse(raw, label string) (career.Detail, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return career.Detail{}, fmt.Errorf("parse gemini response: empty body")
	}

	var d career.Detail
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return career.Detail{}, fmt.Errorf("parse gemini response: %w", err)
	}
	return normalize(d, label), nil
}

// normalize fills keys the model left out so every response has the same shape.
func normalize(d career.Detail, label string) career.Detail {
	fb := career.Fallback(label)
	if strings.TrimSpace(d.ID) == "" {
		d.ID = fb.ID
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = fb.Title
	}
	if strings.TrimSpace(d.Description) == "" {
		d.Description = fb.Description
	}
	if d.Responsibilities == nil {
		d.Responsibilities = []string{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if strings.TrimSpace(d.Education) == "" {
		d.Education = career.NotAvailable
	}
	if strings.TrimSpace(d.SalaryRange) == "" {
		d.SalaryRange = career.NotAvailable
	}
	return d
}

// extractJSON returns the object between the first '{' and the last '}',
// which drops code fences in any case and any text around them.
func extractJSON(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
