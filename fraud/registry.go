package fraud

import (
	"fmt"
	"sync"
)

// Registry is an explicit, mutex-guarded rule set. It is constructed once at
// process start (seeded with the built-in rules) and handed to a Detector;
// there are no package-level singletons, so tests can build isolated copies.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	rules   map[string]Rule
	enabled map[string]bool
}

// NewRegistry returns a registry seeded with the built-in rules, all enabled.
func NewRegistry() *Registry {
	r := &Registry{
		rules:   make(map[string]Rule),
		enabled: make(map[string]bool),
	}
	for _, rule := range builtinRules() {
		id := rule.Info().ID
		r.order = append(r.order, id)
		r.rules[id] = rule
		r.enabled[id] = true
	}
	return r
}

// Add registers a custom rule, enabled, after the existing rules.
func (r *Registry) Add(rule Rule) error {
	id := rule.Info().ID
	if id == "" {
		return fmt.Errorf("rule id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("rule %s already registered", id)
	}
	r.order = append(r.order, id)
	r.rules[id] = rule
	r.enabled[id] = true
	return nil
}

// Enable turns a registered rule on.
func (r *Registry) Enable(id string) error {
	return r.setEnabled(id, true)
}

// Disable turns a registered rule off without removing it.
func (r *Registry) Disable(id string) error {
	return r.setEnabled(id, false)
}

func (r *Registry) setEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[id]; !exists {
		return fmt.Errorf("unknown rule %s", id)
	}
	r.enabled[id] = enabled
	return nil
}

// Active returns the enabled rules in registration order. The returned slice
// is a snapshot; concurrent registry changes do not affect it.
func (r *Registry) Active() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	active := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		if r.enabled[id] {
			active = append(active, r.rules[id])
		}
	}
	return active
}
