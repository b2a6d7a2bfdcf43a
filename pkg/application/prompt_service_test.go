package application

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestPromptLifecycle(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewPromptService(ws)
	ctx := context.Background()

	if _, err := svc.AddPrompt(ctx, "aurora", "discover", workspace.StepResearchPrompts, "Trends", "web", "", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank text: got %v, want ErrValidation", err)
	}

	p, err := svc.AddPrompt(ctx, "aurora", "discover", workspace.StepResearchPrompts, "Trends", "web", "What are creators filming at night?", []string{"research"})
	if err != nil {
		t.Fatalf("AddPrompt: %v", err)
	}
	if p.Status != workspace.PromptReady {
		t.Errorf("new prompt status = %q, want ready", p.Status)
	}

	if err := svc.MarkPromptRun(ctx, "aurora", "discover", workspace.StepResearchPrompts, p.ID); err != nil {
		t.Fatalf("MarkPromptRun: %v", err)
	}
	if p.Status != workspace.PromptDone || p.LastRun.IsZero() {
		t.Errorf("run prompt = %+v", p)
	}

	watching, err := svc.ToggleWatch(ctx, "aurora", "discover", workspace.StepResearchPrompts, p.ID)
	if err != nil || !watching {
		t.Fatalf("first toggle = (%v, %v), want watching", watching, err)
	}
	watching, err = svc.ToggleWatch(ctx, "aurora", "discover", workspace.StepResearchPrompts, p.ID)
	if err != nil || watching {
		t.Fatalf("second toggle = (%v, %v), want unwatched", watching, err)
	}

	if _, err := svc.ToggleWatch(ctx, "aurora", "discover", workspace.StepResearchPrompts, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown prompt: got %v, want ErrNotFound", err)
	}
}
