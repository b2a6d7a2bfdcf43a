// Package workspace implements the step-detail state model: the typed
// per-step payloads, their default-shape factories, the merge-on-load
// reconciliation, and the board/critique/outline/script structures the
// concept pipeline is built on.
package workspace

import (
	"encoding/json"

	"github.com/felixgeelhaar/studio/pkg/domain/project"
)

// Kind identifies a step-detail shape.
type Kind string

const (
	KindIntake   Kind = "intake"
	KindBrief    Kind = "brief"
	KindPersonas Kind = "personas"
	KindPrompts  Kind = "prompts"
	KindConcept  Kind = "concept"
	KindCritique Kind = "critique"
	KindOutline  Kind = "outline"
	KindScript   Kind = "script"
	KindFreeform Kind = "freeform"
)

// Canonical step ids. The step id on the project tree selects the
// detail factory; ids outside this set are free-form pass-through.
const (
	StepSourceIntake    = "source-intake"
	StepBriefQuestions  = "brief-questions"
	StepPersonaStudio   = "persona-studio"
	StepResearchPrompts = "research-prompts"
	StepConceptExplorer = "concept-explorer"
	StepBoardBuilder    = "concept-boards"
	StepCritique        = "critique-workspace"
	StepSceneOutline    = "scene-outline"
	StepScriptDraft     = "script-draft"
)

// Detail is the mutable payload a step's mutation handlers operate on.
// Every field referenced by a handler exists after EnsureStepDetail has
// run; absence is not a valid precondition.
type Detail interface {
	Kind() Kind
}

// Freeform is the pass-through detail for step ids with no registered
// factory: the stored payload, returned unmodified.
type Freeform json.RawMessage

func (Freeform) Kind() Kind { return KindFreeform }

// MarshalJSON emits the stored payload verbatim.
func (f Freeform) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return []byte(f), nil
}

// definition binds a step kind to its default-shape factory and its
// normalization rule.
type definition struct {
	kind      Kind
	newDetail func() Detail
	normalize func(Detail)
}

// registry maps step id to its detail definition. The board builder
// step carries no detail of its own: it operates on the concept
// explorer detail of the same module.
var registry = map[string]definition{
	StepSourceIntake:    {KindIntake, func() Detail { return newIntakeDetail() }, func(d Detail) { d.(*IntakeDetail).normalize() }},
	StepBriefQuestions:  {KindBrief, func() Detail { return newBriefDetail() }, func(d Detail) { d.(*BriefDetail).normalize() }},
	StepPersonaStudio:   {KindPersonas, func() Detail { return newPersonaDetail() }, func(d Detail) { d.(*PersonaDetail).normalize() }},
	StepResearchPrompts: {KindPrompts, func() Detail { return newPromptsDetail() }, func(d Detail) { d.(*PromptsDetail).normalize() }},
	StepConceptExplorer: {KindConcept, func() Detail { return newConceptDetail() }, func(d Detail) { d.(*ConceptDetail).normalize() }},
	StepCritique:        {KindCritique, func() Detail { return newCritiqueDetail() }, func(d Detail) { d.(*CritiqueDetail).normalize() }},
	StepSceneOutline:    {KindOutline, func() Detail { return newOutlineDetail() }, func(d Detail) { d.(*OutlineDetail).normalize() }},
	StepScriptDraft:     {KindScript, func() Detail { return newScriptDetail() }, func(d Detail) { d.(*ScriptDetail).normalize() }},
}

// KindOf returns the detail kind owned by a step id.
func KindOf(stepID string) (Kind, bool) {
	def, ok := registry[stepID]
	if !ok {
		return KindFreeform, false
	}
	return def.kind, true
}

// EnsureStepDetail returns the step's detail, creating or reconciling
// it as needed:
//
//   - absent: the factory default is constructed, stored and returned;
//   - present without a registered factory: the stored payload is
//     returned unmodified;
//   - present with a factory: the stored JSON is decoded over the
//     factory defaults (stored values win per key, defaults fill gaps),
//     normalization corrects the result, and it is written back.
//
// The decoded detail is cached on the module, so repeated calls return
// the same value. Malformed stored payloads are corrected silently;
// this function never fails.
func EnsureStepDetail(m *project.Module, stepID string) Detail {
	if cached, ok := m.CachedDetail(stepID); ok {
		if d, ok := cached.(Detail); ok {
			return d
		}
	}

	def, registered := registry[stepID]
	raw, stored := m.RawDetail(stepID)
	if !registered {
		if !stored {
			return nil
		}
		return Freeform(raw)
	}

	d := def.newDetail()
	if stored {
		// Stored values win per key. A payload that fails to decode is
		// treated as absent and replaced by the corrected default.
		_ = json.Unmarshal(raw, d)
	}
	def.normalize(d)
	_ = m.StoreDetail(stepID, d)
	return d
}

// CloneDetail deep-copies a detail (or any JSON-serializable value)
// through a marshal round trip. Used for snapshots handed to append-only
// structures such as script drafts.
func CloneDetail[T any](v T) T {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
