package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/apodwall/internal/model"
)

// recordingStep is a test step that records whether it ran and can be
// configured to fail.
type recordingStep struct {
	name     string
	err      error
	kind     model.ErrorKind
	executed bool
}

func (s *recordingStep) Do(_ context.Context, _ *model.RunReport) error {
	s.executed = true
	return s.err
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Classify(_ error) model.ErrorKind { return s.kind }

// TestPipelineExecute tests step orchestration.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and marks the run successful", func(t *testing.T) {
		t.Parallel()

		first := &recordingStep{name: "first"}
		second := &recordingStep{name: "second"}
		third := &recordingStep{name: "third"}

		p := New()
		p.AddSteps(first, second, third)

		report := model.NewRunReport("https://example.com/page.html")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("failed to execute pipeline: %v", err)
		}

		if !first.executed || !second.executed || !third.executed {
			t.Error("expected every step to run")
		}
		if report.Status != model.StatusSuccess {
			t.Errorf("expected status %q, got %q", model.StatusSuccess, report.Status)
		}
		if len(report.Steps) != 3 {
			t.Fatalf("expected 3 step results, got %d", len(report.Steps))
		}
		for i, name := range []string{"first", "second", "third"} {
			if report.Steps[i].Name != name {
				t.Errorf("step %d: expected %q, got %q", i, name, report.Steps[i].Name)
			}
		}
	})

	t.Run("first failure aborts the run", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("page unreachable")
		first := &recordingStep{name: "first", err: stepErr, kind: model.ErrorKindNetwork}
		second := &recordingStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		report := model.NewRunReport("https://example.com/page.html")
		if err := p.Execute(context.Background(), report); !errors.Is(err, stepErr) {
			t.Fatalf("expected the step error, got %v", err)
		}

		if second.executed {
			t.Error("expected the pipeline to stop at the failing step")
		}
		if report.Status != model.StatusFailed {
			t.Errorf("expected status %q, got %q", model.StatusFailed, report.Status)
		}
		if report.ErrKind != model.ErrorKindNetwork {
			t.Errorf("expected error kind %q, got %q", model.ErrorKindNetwork, report.ErrKind)
		}
		if len(report.Steps) != 1 {
			t.Errorf("expected 1 step result, got %d", len(report.Steps))
		}
		if report.Steps[0].Err == "" {
			t.Error("expected the step result to carry the error message")
		}
	})

	t.Run("step classification reaches the report", func(t *testing.T) {
		t.Parallel()

		step := &recordingStep{name: "set_wallpaper", err: errors.New("shell refused"), kind: model.ErrorKindOS}

		p := New()
		p.AddSteps(step)

		report := model.NewRunReport("https://example.com/page.html")
		_ = p.Execute(context.Background(), report)

		if report.ErrKind != model.ErrorKindOS {
			t.Errorf("expected error kind %q, got %q", model.ErrorKindOS, report.ErrKind)
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &recordingStep{name: "first"}
		p := New()
		p.AddSteps(step)

		report := model.NewRunReport("https://example.com/page.html")
		if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		if step.executed {
			t.Error("expected no step to run after cancellation")
		}
		if report.Status != model.StatusFailed {
			t.Errorf("expected status %q, got %q", model.StatusFailed, report.Status)
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		report := model.NewRunReport("https://example.com/page.html")
		if err := New().Execute(context.Background(), report); err != nil {
			t.Fatalf("failed to execute empty pipeline: %v", err)
		}
		if report.Status != model.StatusSuccess {
			t.Errorf("expected status %q, got %q", model.StatusSuccess, report.Status)
		}
	})
}

// TestPipelineStepNames tests step introspection.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	t.Run("returns names in execution order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&recordingStep{name: "fetch_page"},
			&recordingStep{name: "extract_image_url"},
		)

		if p.StepCount() != 2 {
			t.Errorf("expected 2 steps, got %d", p.StepCount())
		}
		names := p.StepNames()
		if names[0] != "fetch_page" || names[1] != "extract_image_url" {
			t.Errorf("unexpected step names: %v", names)
		}
	})
}
