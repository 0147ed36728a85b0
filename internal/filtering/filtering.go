package filtering

import (
	"fmt"

	"github.com/jobscout-kr/jobscout/internal/job"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to postings.
type Filter interface {
	Name() string
	Apply(p *job.Postings) (*job.Postings, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filtering runs an ordered list of filters over a postings pool.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	return &Filtering{steps: steps, logger: logger}
}

// NewPipeline wires the three eligibility rules as separate steps so the
// caller gets per-rule drop counts.
func NewPipeline(e *Eligibility, logger *zap.Logger) *Filtering {
	return New([]Filter{
		NewTitleExclude(e),
		NewKeywordRelevance(e),
		NewEntryLevel(),
	}, logger)
}

// RunFilters executes the supplied filters sequentially, returning the
// resulting postings list.
func (f *Filtering) RunFilters(p *job.Postings) (*job.Postings, error) {
	for _, step := range f.steps {
		next, info, err := step.Apply(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if f.logger != nil {
			f.logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		p = next
	}

	return p, nil
}

// keep rebuilds a postings list with only the entries the predicate
// approves, preserving input order.
func keep(p *job.Postings, pred func(*job.Posting) bool) (*job.Postings, Step) {
	initial := p.Len()
	kept := make([]*job.Posting, 0, initial)
	for _, posting := range p.Items {
		if pred(posting) {
			kept = append(kept, posting)
		}
	}
	next := &job.Postings{Items: kept}
	return next, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
