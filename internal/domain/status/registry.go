// Package status holds the work-order status catalog: canonical ids, legacy
// aliases, display metadata and the order of the repair flow.
package status

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID is a canonical work-order status id.
type ID string

const (
	Intake           ID = "intake"
	Diagnosing       ID = "diagnosing"
	AwaitingApproval ID = "awaiting_approval"
	WaitingParts     ID = "waiting_parts"
	InProgress       ID = "in_progress"
	ReadyForPickup   ID = "ready_for_pickup"
	PickedUp         ID = "picked_up"
	Cancelled        ID = "cancelled"
)

// Definition is the display metadata of one status. Order is the position in
// the repair flow, or -1 for statuses outside of it.
type Definition struct {
	ID           ID       `json:"id"`
	Label        string   `json:"label"`
	ColorClasses string   `json:"color_classes"`
	Order        int      `json:"order"`
	Terminal     bool     `json:"terminal"`
	Aliases      []string `json:"aliases,omitempty"`
}

// InFlow reports whether the status is part of the linear repair flow.
func (d Definition) InFlow() bool { return d.Order >= 0 }

//go:embed statuses.yaml
var catalogYAML []byte

type catalogEntry struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Color    string   `yaml:"color"`
	Flow     bool     `yaml:"flow"`
	Terminal bool     `yaml:"terminal"`
	Aliases  []string `yaml:"aliases"`
}

type catalog struct {
	Default  string         `yaml:"default"`
	Statuses []catalogEntry `yaml:"statuses"`
}

// Registry resolves raw status strings against a catalog.
type Registry struct {
	defaultID ID
	ordered   []Definition
	byKey     map[string]int
}

var defaultRegistry = mustLoad(catalogYAML)

// Default returns the registry built from the embedded catalog.
func Default() *Registry { return defaultRegistry }

func mustLoad(raw []byte) *Registry {
	r, err := Load(raw)
	if err != nil {
		panic(fmt.Sprintf("status catalog: %v", err))
	}
	return r
}

// Load parses a YAML catalog. Ids and aliases share one key space and must
// not collide.
func Load(raw []byte) (*Registry, error) {
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Statuses) == 0 {
		return nil, fmt.Errorf("catalog has no statuses")
	}

	r := &Registry{byKey: make(map[string]int)}
	flowPos := 0
	for i, e := range c.Statuses {
		key := fold(e.ID)
		if key == "" {
			return nil, fmt.Errorf("status %d has no id", i)
		}
		d := Definition{
			ID:           ID(key),
			Label:        e.Label,
			ColorClasses: e.Color,
			Order:        -1,
			Terminal:     e.Terminal,
			Aliases:      e.Aliases,
		}
		if e.Flow {
			d.Order = flowPos
			flowPos++
		}
		if err := r.bind(key, i); err != nil {
			return nil, err
		}
		for _, a := range e.Aliases {
			if err := r.bind(fold(a), i); err != nil {
				return nil, err
			}
		}
		r.ordered = append(r.ordered, d)
	}

	def := fold(c.Default)
	idx, ok := r.byKey[def]
	if !ok {
		return nil, fmt.Errorf("default status %q is not in the catalog", c.Default)
	}
	r.defaultID = r.ordered[idx].ID
	return r, nil
}

func (r *Registry) bind(key string, idx int) error {
	if key == "" {
		return nil
	}
	if prev, ok := r.byKey[key]; ok && prev != idx {
		return fmt.Errorf("status key %q is bound twice", key)
	}
	r.byKey[key] = idx
	return nil
}

// fold lower-cases, trims, and maps spaces and dashes to underscores.
func fold(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return s
}

// DefaultID is the id unknown input falls back to.
func (r *Registry) DefaultID() ID { return r.defaultID }

// Lookup resolves raw strictly: ok is false when raw is neither an id nor an alias.
func (r *Registry) Lookup(raw string) (Definition, bool) {
	idx, ok := r.byKey[fold(raw)]
	if !ok {
		return Definition{}, false
	}
	return r.ordered[idx], true
}

// Normalize maps any input to a canonical id. Unknown or empty input maps to
// the default id.
func (r *Registry) Normalize(raw string) ID {
	if d, ok := r.Lookup(raw); ok {
		return d.ID
	}
	return r.defaultID
}

// Config returns the definition of the normalized status.
func (r *Registry) Config(raw string) Definition {
	d, _ := r.Lookup(string(r.Normalize(raw)))
	return d
}

// All returns every definition in catalog order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Flow returns the statuses of the repair flow in ascending order.
func (r *Registry) Flow() []Definition {
	out := make([]Definition, 0, len(r.ordered))
	for _, d := range r.ordered {
		if d.InFlow() {
			out = append(out, d)
		}
	}
	return out
}

// IsCompleted reports whether step is at or before current in the flow, as
// drawn by the progress bar. Statuses outside the flow are never completed.
func (r *Registry) IsCompleted(step, current string) bool {
	s, c := r.Config(step), r.Config(current)
	if !s.InFlow() || !c.InFlow() {
		return false
	}
	return s.Order <= c.Order
}

// IsTerminal reports whether the normalized status closes the order for reporting.
func (r *Registry) IsTerminal(raw string) bool {
	return r.Config(raw).Terminal
}

// Normalize resolves raw against the default registry.
func Normalize(raw string) ID { return defaultRegistry.Normalize(raw) }

// Config returns the definition of raw from the default registry.
func Config(raw string) Definition { return defaultRegistry.Config(raw) }

// Lookup resolves raw strictly against the default registry.
func Lookup(raw string) (Definition, bool) { return defaultRegistry.Lookup(raw) }
