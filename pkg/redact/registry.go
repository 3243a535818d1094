package redact

import (
	"fmt"
	"sync"

	"github.com/aladaia/vocan/pkg/textproc"
)

// Registry maps normalized person names to placeholders for one run.
// Numbering is corpus-global: the first new name gets [PERSONNE_1], the
// next one [PERSONNE_2], and every later mention of a known name reuses its
// placeholder.
type Registry struct {
	mu      sync.Mutex
	index   map[string]int
	persons []RegisteredPerson
}

// RegisteredPerson is one entry of the registry. Names stay in the index
// only, so entries carry no personal data.
type RegisteredPerson struct {
	Placeholder string `json:"placeholder"`
	Mentions    int    `json:"mentions"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Placeholder returns the placeholder of a person name, allocating a new
// one on first sight.
func (r *Registry) Placeholder(surface string) string {
	key := textproc.Normalize(surface)

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[key]; ok {
		r.persons[i].Mentions++
		return r.persons[i].Placeholder
	}
	tok := fmt.Sprintf("[PERSONNE_%d]", len(r.persons)+1)
	r.index[key] = len(r.persons)
	r.persons = append(r.persons, RegisteredPerson{
		Placeholder: tok,
		Mentions:    1,
	})
	return tok
}

// Len returns the number of distinct persons seen.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.persons)
}

// Persons returns a copy of registry entries in allocation order.
func (r *Registry) Persons() []RegisteredPerson {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]RegisteredPerson, len(r.persons))
	copy(res, r.persons)
	return res
}
