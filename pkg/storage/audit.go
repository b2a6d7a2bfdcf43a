package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditRecord is one line in audit.jsonl.
type AuditRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// FileAuditLogger appends audit records to .studio/audit.jsonl.
// Implements domain.AuditLogger.
type FileAuditLogger struct {
	mu   sync.Mutex
	path string
	dir  string
}

// NewFileAuditLogger creates an audit logger for the given workspace
// root. The directory is created on first write.
func NewFileAuditLogger(root string) *FileAuditLogger {
	dir := filepath.Join(root, StudioDir)
	return &FileAuditLogger{path: filepath.Join(dir, AuditFile), dir: dir}
}

// Log appends one record.
func (l *FileAuditLogger) Log(action string, actor string, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	record := AuditRecord{
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// Records reads the full audit trail. Used by tooling and tests.
func (l *FileAuditLogger) Records() ([]AuditRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var records []AuditRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var r AuditRecord
		if err := dec.Decode(&r); err != nil {
			return records, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
