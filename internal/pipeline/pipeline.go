package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/framegrid/internal/chain"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/producer"
	"github.com/specialistvlad/framegrid/internal/propagation"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// Stage is one step of a build.
type Stage interface {
	Name() string
	Run(ctx context.Context, b *Build) error
}

// Build is the state shared by the stages of one build.
type Build struct {
	Settings transformer.Settings
	Network  transformer.Mutator
	Result   *Result

	propagation *propagation.Engine
	resolver    *chain.Resolver
	producers   *producer.Instantiator
	now         func() time.Time
}

// Pipeline runs an ordered list of stages.
type Pipeline struct {
	settings transformer.Settings
	stages   []Stage
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used to timestamp the report.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithStages replaces the default stages.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) { p.stages = stages }
}

// DefaultStages returns propagate, resolve, validate and report, in order.
func DefaultStages() []Stage {
	return []Stage{PropagateStage{}, ResolveStage{}, ValidateStage{}, ReportStage{}}
}

// New creates a pipeline running the default stages with settings.
func New(settings transformer.Settings, opts ...Option) *Pipeline {
	p := &Pipeline{settings: settings, stages: DefaultStages(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds net. The network is modified in place.
func (p *Pipeline) Run(ctx context.Context, net transformer.Mutator) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if !p.settings.Enabled {
		logger.Debug("Pipeline: Transformer disabled, skipping.")
		return &Result{Complete: true}, nil
	}
	if p.settings.Catalog == nil {
		return nil, fmt.Errorf("pipeline: no transform catalog")
	}

	b := &Build{
		Settings:    p.settings,
		Network:     net,
		Result:      &Result{Enabled: true, Complete: true},
		propagation: propagation.New(p.settings),
		resolver:    chain.NewResolver(p.settings.Catalog),
		producers:   producer.New(net),
		now:         p.now,
	}

	for _, stage := range p.stages {
		logger.Debug("Pipeline: Running stage.", "stage", stage.Name())
		if err := stage.Run(ctx, b); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	logger.Debug("Pipeline: Build finished.",
		"complete", b.Result.Complete,
		"rounds", b.Result.Rounds,
		"producers", b.Result.Producers)
	return b.Result, nil
}
