// Package storage persists the studio document and its side files
// (audit log, event log) under the .studio/ directory.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/natefinch/atomic"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
)

const StudioDir = ".studio"
const DocumentFile = "studio.json"
const AuditFile = "audit.jsonl"
const EventsFile = "events.jsonl"

// Document is the single persisted state layout: the portfolio
// aggregate plus every project with its modules and step details.
type Document struct {
	Portfolio *portfolio.Portfolio `json:"portfolio"`
	Projects  []*project.Project   `json:"projects"`
}

// FilesystemRepository implements domain.WorkspaceRepository on top of
// one JSON document. The document is loaded once and cached; every
// mutation writes the whole document back atomically.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config

	mu  sync.Mutex
	doc *Document

	// graphMu serializes traversal and mutation of the decoded graph.
	// Load methods hand out pointers into the cached document and step
	// details reconcile lazily on read, so callers hold this lock for
	// the whole span of an operation, not just the load. It is a
	// separate mutex from mu: SaveStepDetail takes mu internally while
	// its caller holds graphMu.
	graphMu sync.Mutex
}

// NewFilesystemRepository creates a repository rooted at the given
// workspace directory.
func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// DocumentPath returns the absolute path of the studio document.
func (r *FilesystemRepository) DocumentPath() string {
	return filepath.Join(r.root, StudioDir, DocumentFile)
}

// ResolvePath ensures the filename stays inside the .studio directory
// and refuses traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	baseDir := filepath.Join(r.root, StudioDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

// Initialize creates the .studio directory.
func (r *FilesystemRepository) Initialize() error {
	if err := os.MkdirAll(filepath.Join(r.root, StudioDir), 0700); err != nil {
		return fmt.Errorf("failed to create .studio directory: %w", err)
	}
	return nil
}

// IsInitialized reports whether the .studio directory exists.
func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, StudioDir))
	return err == nil
}

// load returns the cached document, reading and validating it on first
// use. Callers must hold r.mu.
func (r *FilesystemRepository) load() (*Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}

	retryer := retry.New[*Document](r.retryConfig)
	doc, err := retryer.Do(context.Background(), func(ctx context.Context) (*Document, error) {
		path, err := r.ResolvePath(DocumentFile)
		if err != nil {
			return nil, err
		}
		// #nosec G304 -- path is validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read studio document: %w", err)
		}
		if err := ValidateDocument(data); err != nil {
			return nil, err
		}
		var d Document
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal studio document: %w", err)
		}
		return &d, nil
	})
	if err != nil {
		return nil, err
	}

	if doc.Portfolio == nil {
		doc.Portfolio = &portfolio.Portfolio{Metrics: []portfolio.Metric{}, Signals: []portfolio.Signal{}}
	}
	r.doc = doc
	return doc, nil
}

// flush writes the cached document back atomically. Callers must hold
// r.mu.
func (r *FilesystemRepository) flush() error {
	path, err := r.ResolvePath(DocumentFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal studio document: %w", err)
	}

	retryer := retry.New[struct{}](r.retryConfig)
	_, err = retryer.Do(context.Background(), func(ctx context.Context) (struct{}, error) {
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return struct{}{}, fmt.Errorf("failed to write studio document: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

// SaveDocument replaces the cached document and writes it through.
func (r *FilesystemRepository) SaveDocument(doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	return r.flush()
}

// LoadDocument returns the full document.
func (r *FilesystemRepository) LoadDocument() (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FilesystemRepository) LoadPortfolio() (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Portfolio, nil
}

func (r *FilesystemRepository) LoadProjects() ([]*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

func (r *FilesystemRepository) LoadProject(id string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

// SaveStepDetail stores the detail on the owning module and flushes the
// document. The write is atomic and retried; failures are reported to
// the caller rather than swallowed.
func (r *FilesystemRepository) SaveStepDetail(projectID, moduleID, stepID string, detail interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}
	for _, p := range doc.Projects {
		if p.ID != projectID {
			continue
		}
		m, ok := p.Module(moduleID)
		if !ok {
			return fmt.Errorf("module %s: %w", moduleID, domain.ErrNotFound)
		}
		if err := m.StoreDetail(stepID, detail); err != nil {
			return fmt.Errorf("failed to encode detail for step %s: %w", stepID, err)
		}
		return r.flush()
	}
	return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
}

// Reload discards the cached document so the next read picks up
// external changes to the fixture file. It waits for in-flight
// operations so the swap never lands mid-traversal.
func (r *FilesystemRepository) Reload() error {
	r.graphMu.Lock()
	defer r.graphMu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = nil
	return nil
}

// Lock takes the document graph lock. Every service operation that
// traverses or mutates loaded data runs under it.
func (r *FilesystemRepository) Lock() {
	r.graphMu.Lock()
}

// Unlock releases the document graph lock.
func (r *FilesystemRepository) Unlock() {
	r.graphMu.Unlock()
}
