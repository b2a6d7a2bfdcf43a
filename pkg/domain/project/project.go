// Package project defines the project/module/step tree the workspace
// operates on. Step details are stored as raw JSON on the module and
// decoded on demand by the workspace package; the module keeps a cache
// of decoded details so repeated lookups return the same value.
package project

import "encoding/json"

// Step is a named unit of work inside a module. Its id determines
// which detail shape and which mutation service apply.
type Step struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
}

// Artifact is the deliverable summary a module may carry once work in
// it has produced something reviewable.
type Artifact struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// Module is one workflow stage (e.g. "Discover & Brief", "Concept
// Studio") holding ordered steps and their per-step details.
type Module struct {
	ID       string                     `json:"id"`
	Title    string                     `json:"title"`
	Status   Status                     `json:"status"`
	Steps    []Step                     `json:"steps"`
	Details  map[string]json.RawMessage `json:"details,omitempty"`
	Artifact *Artifact                  `json:"artifact,omitempty"`

	// cache holds decoded step details keyed by step id. Not
	// serialized; rebuilt lazily after a (re)load.
	cache map[string]interface{}
}

// Step returns the step with the given id.
func (m *Module) Step(stepID string) (*Step, bool) {
	for i := range m.Steps {
		if m.Steps[i].ID == stepID {
			return &m.Steps[i], true
		}
	}
	return nil, false
}

// RawDetail returns the stored raw payload for a step, if any.
func (m *Module) RawDetail(stepID string) (json.RawMessage, bool) {
	raw, ok := m.Details[stepID]
	return raw, ok
}

// CachedDetail returns the decoded detail for a step if one has been
// decoded since the last load.
func (m *Module) CachedDetail(stepID string) (interface{}, bool) {
	d, ok := m.cache[stepID]
	return d, ok
}

// StoreDetail serializes the detail into Details[stepID] and caches the
// decoded value.
func (m *Module) StoreDetail(stepID string, detail interface{}) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	if m.Details == nil {
		m.Details = make(map[string]json.RawMessage)
	}
	m.Details[stepID] = raw
	if m.cache == nil {
		m.cache = make(map[string]interface{})
	}
	m.cache[stepID] = detail
	return nil
}

// StoreRawDetail replaces the stored payload with caller-supplied raw
// JSON and drops the decoded cache entry so the next lookup reconciles
// the new payload against the factory shape.
func (m *Module) StoreRawDetail(stepID string, raw json.RawMessage) {
	if m.Details == nil {
		m.Details = make(map[string]json.RawMessage)
	}
	m.Details[stepID] = raw
	delete(m.cache, stepID)
}

// InvalidateDetails drops all decoded details. Called after the module
// is reloaded from storage.
func (m *Module) InvalidateDetails() {
	m.cache = nil
}

// Project is the top-level entity: a client engagement broken into
// ordered workflow modules.
type Project struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Client  string    `json:"client"`
	Status  Status    `json:"status"`
	Modules []*Module `json:"modules"`
}

// Module returns the module with the given id.
func (p *Project) Module(moduleID string) (*Module, bool) {
	for _, m := range p.Modules {
		if m.ID == moduleID {
			return m, true
		}
	}
	return nil, false
}

// FindStep locates a step anywhere in the project.
func (p *Project) FindStep(stepID string) (*Module, *Step, bool) {
	for _, m := range p.Modules {
		if s, ok := m.Step(stepID); ok {
			return m, s, true
		}
	}
	return nil, nil, false
}
