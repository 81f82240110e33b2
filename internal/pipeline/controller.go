// Package pipeline walks a ledger through the three analysis stages:
// metric computation, plan derivation and advisor binding. The Controller
// owns the stage position and the cached result of each completed stage;
// every stage runs at most once per ledger.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/arthguru/finance-coach/internal/advisor"
	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/domain"
	"github.com/arthguru/finance-coach/internal/planner"
)

// ErrOutOfSequence is returned when a transition or accessor is requested
// before the stage that serves it has been reached.
var ErrOutOfSequence = errors.New("pipeline stage not reached")

// Stage is the controller's position in the analysis sequence.
type Stage int

const (
	StageIdle Stage = iota
	StageAnalyzed
	StagePlanned
	StageAdvisorReady
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAnalyzed:
		return "analyzed"
	case StagePlanned:
		return "planned"
	case StageAdvisorReady:
		return "advisor_ready"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// AnalyzeFunc computes metrics from a ledger.
type AnalyzeFunc func(domain.Ledger) domain.Metrics

// PlanFunc derives a plan from metrics.
type PlanFunc func(domain.Metrics) (domain.Plan, error)

// Controller drives one ledger through the stages. It is not safe for
// concurrent use; the caller serializes access (see session.Session).
type Controller struct {
	ledger  domain.Ledger
	stage   Stage
	analyze AnalyzeFunc
	plan    PlanFunc

	metrics domain.Metrics
	planned domain.Plan
	adv     *advisor.Advisor
}

// Option adjusts a Controller at construction time.
type Option func(*Controller)

// WithAnalyzeFunc substitutes the metric computation. Tests use this to
// count stage executions.
func WithAnalyzeFunc(fn AnalyzeFunc) Option {
	return func(c *Controller) { c.analyze = fn }
}

// WithPlanFunc substitutes the plan derivation.
func WithPlanFunc(fn PlanFunc) Option {
	return func(c *Controller) { c.plan = fn }
}

// New creates an idle controller over a ledger. The ledger is treated as
// immutable; loading different data means building a new Controller.
func New(ledger domain.Ledger, opts ...Option) *Controller {
	c := &Controller{
		ledger:  ledger,
		stage:   StageIdle,
		analyze: analysis.Analyze,
		plan:    planner.BuildPlan,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stage reports the current stage.
func (c *Controller) Stage() Stage {
	return c.stage
}

// Ledger returns the bound ledger.
func (c *Controller) Ledger() domain.Ledger {
	return c.ledger
}

// Start validates the ledger and runs the analysis stage. Once analysis
// has succeeded, further Start calls are no-ops and the cached metrics
// stand. A validation failure leaves the controller idle.
func (c *Controller) Start() error {
	if c.stage >= StageAnalyzed {
		return nil
	}
	if err := c.ledger.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	c.metrics = c.analyze(c.ledger)
	c.stage = StageAnalyzed
	return nil
}

// Advance moves one stage forward. From Analyzed it derives the plan; a
// planning failure (for example a ledger with no expense rows) keeps the
// controller at Analyzed. From Planned it binds the advisor. Advancing an
// idle controller is an ordering error; advancing a finished one is a
// no-op.
func (c *Controller) Advance() error {
	switch c.stage {
	case StageIdle:
		return fmt.Errorf("advance from %s: %w", c.stage, ErrOutOfSequence)
	case StageAnalyzed:
		plan, err := c.plan(c.metrics)
		if err != nil {
			return fmt.Errorf("advance: %w", err)
		}
		c.planned = plan
		c.stage = StagePlanned
		return nil
	case StagePlanned:
		c.adv = advisor.New(c.metrics, c.planned)
		c.stage = StageAdvisorReady
		return nil
	default:
		return nil
	}
}

// Run drives the controller from its current stage to advisor-ready.
func (c *Controller) Run() error {
	if err := c.Start(); err != nil {
		return err
	}
	for c.stage < StageAdvisorReady {
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards every cached result and returns to idle. The ledger
// stays bound; the next Start recomputes from scratch.
func (c *Controller) Reset() {
	c.stage = StageIdle
	c.metrics = domain.Metrics{}
	c.planned = domain.Plan{}
	c.adv = nil
}

// Metrics returns the analysis result once the analysis stage has run.
func (c *Controller) Metrics() (domain.Metrics, error) {
	if c.stage < StageAnalyzed {
		return domain.Metrics{}, fmt.Errorf("metrics at %s: %w", c.stage, ErrOutOfSequence)
	}
	return c.metrics, nil
}

// Plan returns the planning result once the planning stage has run.
func (c *Controller) Plan() (domain.Plan, error) {
	if c.stage < StagePlanned {
		return domain.Plan{}, fmt.Errorf("plan at %s: %w", c.stage, ErrOutOfSequence)
	}
	return c.planned, nil
}

// Answer dispatches one question to the advisor. Only valid once the
// controller is advisor-ready; the advisor stays available for any number
// of questions after that.
func (c *Controller) Answer(query string) (string, error) {
	if c.stage < StageAdvisorReady {
		return "", fmt.Errorf("answer at %s: %w", c.stage, ErrOutOfSequence)
	}
	return c.adv.Answer(query), nil
}
