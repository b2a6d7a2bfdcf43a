package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestResolve_Unknown(t *testing.T) {
	ws, _ := testWorkspace(t)

	if _, _, err := ws.Resolve("nope", "discover"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown project: got %v, want ErrNotFound", err)
	}
	if _, _, err := ws.Resolve("aurora", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown module: got %v, want ErrNotFound", err)
	}
	if _, _, err := ws.Resolve("", "discover"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty project id: got %v, want ErrValidation", err)
	}
}

func TestPutRawDetail_NormalizesPartialPayload(t *testing.T) {
	ws, repo := testWorkspace(t)

	detail, err := ws.PutRawDetail(context.Background(), "aurora", "discover", workspace.StepSourceIntake, json.RawMessage(`{"hideArchived":true}`))
	if err != nil {
		t.Fatalf("PutRawDetail: %v", err)
	}
	intake, ok := detail.(*workspace.IntakeDetail)
	if !ok {
		t.Fatalf("detail type = %T, want *IntakeDetail", detail)
	}
	if !intake.HideArchived {
		t.Error("stored hideArchived=true was lost")
	}
	if intake.Sources == nil || intake.SummaryVersions == nil {
		t.Error("factory defaults were not filled in")
	}

	// The corrected shape must be durable, not just in memory.
	repo.Reload()
	p, err := repo.LoadProject("aurora")
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	m, _ := p.Module("discover")
	reloaded := workspace.EnsureStepDetail(m, workspace.StepSourceIntake).(*workspace.IntakeDetail)
	if !reloaded.HideArchived || reloaded.Sources == nil {
		t.Error("normalized detail did not survive a reload")
	}
}

func TestPutRawDetail_Rejections(t *testing.T) {
	ws, _ := testWorkspace(t)
	ctx := context.Background()

	if _, err := ws.PutRawDetail(ctx, "aurora", "discover", workspace.StepSourceIntake, json.RawMessage(`{"broken`)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("invalid JSON: got %v, want ErrValidation", err)
	}
	if _, err := ws.PutRawDetail(ctx, "aurora", "discover", "no-such-step", json.RawMessage(`{}`)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown step: got %v, want ErrNotFound", err)
	}
}

func TestPersistDetail_CancelledContext(t *testing.T) {
	ws, _ := testWorkspace(t)
	_, m, err := ws.Resolve("aurora", "discover")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	detail := ws.EnsureDetail(m, workspace.StepSourceIntake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ws.PersistDetail(ctx, "aurora", m, workspace.StepSourceIntake, detail); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
