package storage

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
)

func testDoc() *Document {
	return &Document{
		Portfolio: &portfolio.Portfolio{Metrics: []portfolio.Metric{}, Signals: []portfolio.Signal{}},
		Projects: []*project.Project{
			{
				ID:     "p1",
				Name:   "First",
				Client: "Acme",
				Status: project.StatusActive,
				Modules: []*project.Module{
					{
						ID:     "m1",
						Title:  "Discover",
						Status: project.StatusActive,
						Steps: []project.Step{
							{ID: "source-intake", Name: "Intake", Status: project.StatusActive},
						},
					},
				},
			},
		},
	}
}

func newTestRepo(t *testing.T) *FilesystemRepository {
	t.Helper()
	repo := NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return repo
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.SaveDocument(testDoc()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh repository over the same root reads from disk.
	again := NewFilesystemRepository(repo.Root())
	doc, err := again.LoadDocument()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].Name != "First" {
		t.Errorf("roundtrip lost data: %+v", doc.Projects)
	}

	p, err := again.LoadProject("p1")
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.Client != "Acme" {
		t.Errorf("Client = %q", p.Client)
	}
	if _, err := again.LoadProject("p2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown project: got %v, want ErrNotFound", err)
	}
}

func TestLoad_MissingDocument(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.LoadDocument(); err == nil {
		t.Fatal("loading an empty workspace should fail")
	}
}

func TestIsInitialized(t *testing.T) {
	repo := NewFilesystemRepository(t.TempDir())
	if repo.IsInitialized() {
		t.Fatal("fresh root reported initialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !repo.IsInitialized() {
		t.Fatal("initialized root reported uninitialized")
	}
}

func TestResolvePath(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.ResolvePath(""); err == nil {
		t.Error("empty filename accepted")
	}
	for _, bad := range []string{"../escape.json", "a/b.json", "../../etc/passwd"} {
		if _, err := repo.ResolvePath(bad); err == nil {
			t.Errorf("traversal accepted: %s", bad)
		}
	}
	path, err := repo.ResolvePath("studio.json")
	if err != nil {
		t.Fatalf("plain filename rejected: %v", err)
	}
	if path != repo.DocumentPath() {
		t.Errorf("path = %q, want %q", path, repo.DocumentPath())
	}
}

func TestSaveStepDetail(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.SaveDocument(testDoc()); err != nil {
		t.Fatalf("save: %v", err)
	}

	detail := map[string]interface{}{"sources": []string{}, "hideArchived": true}
	if err := repo.SaveStepDetail("p1", "m1", "source-intake", detail); err != nil {
		t.Fatalf("SaveStepDetail: %v", err)
	}
	if err := repo.SaveStepDetail("p1", "nope", "source-intake", detail); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown module: got %v, want ErrNotFound", err)
	}
	if err := repo.SaveStepDetail("nope", "m1", "source-intake", detail); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown project: got %v, want ErrNotFound", err)
	}

	again := NewFilesystemRepository(repo.Root())
	p, err := again.LoadProject("p1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	m, _ := p.Module("m1")
	raw, ok := m.RawDetail("source-intake")
	if !ok {
		t.Fatal("detail was not persisted")
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if decoded["hideArchived"] != true {
		t.Errorf("detail = %v", decoded)
	}
}

func TestReload_PicksUpExternalEdit(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.SaveDocument(testDoc()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Simulate an external fixture edit behind the cache's back.
	doc := testDoc()
	doc.Projects[0].Name = "Renamed"
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(repo.DocumentPath(), data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := repo.LoadProject("p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "First" {
		t.Fatalf("cache should still serve the old document, got %q", p.Name)
	}

	repo.Reload()
	p, err = repo.LoadProject("p1")
	if err != nil {
		t.Fatalf("load after reload: %v", err)
	}
	if p.Name != "Renamed" {
		t.Errorf("Name = %q, want the external edit", p.Name)
	}
}

func TestLoad_RejectsInvalidDocument(t *testing.T) {
	repo := newTestRepo(t)
	if err := os.WriteFile(repo.DocumentPath(), []byte(`{"projects":"nope"}`), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := repo.LoadDocument(); err == nil {
		t.Fatal("invalid document accepted")
	}
}
