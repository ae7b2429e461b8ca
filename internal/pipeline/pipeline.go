package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/apodwall/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step reading the fields
// earlier steps wrote into the report.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows steps to carry configuration state
//  2. It provides a Name() method for logging and the run journal
//  3. Construction and execution stay separate, so wiring is testable
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the report to modify.
	// Returning an error aborts the run; advisory steps record what they
	// can and return nil.
	Do(ctx context.Context, report *model.RunReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs the wallpaper steps strictly in order. Every step is a
// hard dependency of the next, so the first error aborts the run.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence, recording each step's
// duration and outcome in the report. On the first failing step the run
// is marked failed and the step's error is returned; when every step
// completes the run is marked successful.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps carry the context into their own blocking calls.
// This keeps cancellation handling in one place between steps.
func (p *Pipeline) Execute(ctx context.Context, report *model.RunReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			report.Fail(model.ErrorKindNetwork, ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name())

		start := time.Now()
		err := step.Do(ctx, report)
		report.AddStepResult(step.Name(), time.Since(start), err)

		if err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			report.Fail(classify(step, err), err)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"duration", time.Since(start),
		)
	}

	report.Succeed()
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// classifier is implemented by steps that know which failure surface
// their errors belong to.
type classifier interface {
	Classify(err error) model.ErrorKind
}

// classify maps a step error to an ErrorKind, asking the step itself
// when it implements classifier.
func classify(step Step, err error) model.ErrorKind {
	if c, ok := step.(classifier); ok {
		return c.Classify(err)
	}
	return model.ErrorKindNetwork
}
