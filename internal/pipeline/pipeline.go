package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/cache"
	"github.com/catalogwatch/catalogwatch/internal/eligibility"
	"github.com/catalogwatch/catalogwatch/internal/extract"
	"github.com/catalogwatch/catalogwatch/internal/features"
	"github.com/catalogwatch/catalogwatch/internal/metrics"
	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/catalogwatch/catalogwatch/internal/score"
)

// Pipeline annotates catalog records with classification, ownership signals,
// features, score and explanation. The cache and metrics are optional.
type Pipeline struct {
	classifier *eligibility.Classifier
	parser     *extract.OwnershipParser
	builder    *features.Builder
	scorer     *score.LinearScorer
	cache      cache.Cache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option customizes a pipeline
type Option func(*Pipeline)

// WithMetrics records per-record and per-run metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger replaces the default logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithCache replaces the cache built from configuration
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(p *Pipeline) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

// NewPipeline creates a new pipeline for the given windows and configuration
func NewPipeline(cfg *model.Config, windows []model.Window, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier: eligibility.NewClassifier(windows, cfg.CurrentYear),
		parser:     extract.NewOwnershipParser(),
		builder:    features.NewBuilder(nil),
		scorer:     score.NewLinearScorer(),
		logger:     slog.Default(),
	}

	if cfg.Cache.Enabled {
		p.cache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		p.cacheTTL = cfg.Cache.TTL
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Annotate processes records serially, in input order. It stops early only
// when ctx is done.
func (p *Pipeline) Annotate(ctx context.Context, records []model.CatalogRecord) ([]model.AnnotatedRecord, error) {
	start := time.Now()
	out := make([]model.AnnotatedRecord, 0, len(records))

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("annotate record %d: %w", i+1, err)
		}

		annotated := p.AnnotateRecord(rec)
		p.logger.Debug("annotated",
			"catalog_id", annotated.CatalogID,
			"window", annotated.EligibilityWindow,
			"score", fmt.Sprintf("%.3f", annotated.Score))
		out = append(out, annotated)
	}

	if p.metrics != nil {
		p.metrics.ObserveRun(time.Since(start).Seconds(), len(out), float64(time.Now().Unix()))
	}

	return out, nil
}

// AnnotateRecord runs the rule engine over one record
func (p *Pipeline) AnnotateRecord(rec model.CatalogRecord) model.AnnotatedRecord {
	// 1. Eligibility window
	classification := p.classifier.Classify(rec.ReleaseYear)

	// 2. Ownership signals, independent of the classification
	ownership := p.parseNotes(rec.OwnershipNotes)

	// 3. Features merge both
	f := p.builder.BuildRecord(classification, ownership, rec.OwnershipNotes)

	// 4. Score and explanation from the same feature record
	explanation := p.scorer.Explain(f)

	annotated := model.AnnotatedRecord{
		CatalogRecord:       rec,
		YearsSinceRelease:   classification.YearsSinceRelease,
		EligibilityWindow:   classification.EligibilityWindow,
		MatchedRule:         classification.MatchedRule,
		OwnershipSignals:    ownership.Signals,
		OwnershipEvidence:   ownership.Evidence,
		OwnershipConfidence: ownership.Confidence,
		Features:            f,
		Score:               p.scorer.Score(f),
		Explainability:      explanation,
	}

	if p.metrics != nil {
		signals := make(map[string]bool, len(ownership.Signals))
		for name, v := range ownership.Signals {
			signals[string(name)] = v
		}
		p.metrics.ObserveRecord(annotated.EligibilityWindow, signals, annotated.Score, annotated.OwnershipConfidence)
	}

	return annotated
}

// parseNotes parses ownership notes, serving repeated notes from the cache
func (p *Pipeline) parseNotes(notes string) model.OwnershipSignals {
	if p.cache == nil {
		return p.parser.Parse(notes)
	}

	key := cache.CacheKey(notes)
	if data, found := p.cache.Get(key); found {
		var cached model.OwnershipSignals
		if err := json.Unmarshal(data, &cached); err == nil {
			if p.metrics != nil {
				p.metrics.IncParseCacheHits()
			}
			return cached
		}
		p.logger.Warn("discarding unreadable cache entry", "key", key)
	}

	parsed := p.parser.Parse(notes)
	if data, err := json.Marshal(parsed); err == nil {
		if err := p.cache.Set(key, data, p.cacheTTL); err != nil {
			p.logger.Warn("cache parse result", "error", err)
		}
	}
	return parsed
}
