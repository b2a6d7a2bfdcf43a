package workspace

import "time"

// Persona is one audience persona in the persona studio.
type Persona struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age,omitempty"`
	Role       string   `json:"role,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Goals      []string `json:"goals"`
	PainPoints []string `json:"painPoints"`
	Quote      string   `json:"quote,omitempty"`
}

// PersonaDetail is the persona-studio step payload.
type PersonaDetail struct {
	Personas []*Persona `json:"personas"`
	Updated  time.Time  `json:"updated,omitempty"`
}

func newPersonaDetail() *PersonaDetail {
	return &PersonaDetail{Personas: []*Persona{}}
}

func (*PersonaDetail) Kind() Kind { return KindPersonas }

func (d *PersonaDetail) normalize() {
	out := make([]*Persona, 0, len(d.Personas))
	for _, p := range d.Personas {
		if p == nil {
			continue
		}
		if p.Goals == nil {
			p.Goals = []string{}
		}
		if p.PainPoints == nil {
			p.PainPoints = []string{}
		}
		out = append(out, p)
	}
	d.Personas = out
}

// Persona returns the persona with the given id.
func (d *PersonaDetail) Persona(id string) (*Persona, bool) {
	for _, p := range d.Personas {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Names returns the persona names in studio order.
func (d *PersonaDetail) Names() []string {
	names := make([]string, 0, len(d.Personas))
	for _, p := range d.Personas {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}
