package variability

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/objones25/codi/dataset"
)

// SelectionMode says how a generation draw picks its variability source.
type SelectionMode int

const (
	// SelectRandom picks uniformly among all registered sources.
	SelectRandom SelectionMode = iota

	// SelectExplicit picks the source named in Selection.Name.
	SelectExplicit

	// SelectCombined applies every registered source at once, summing
	// one perturbation from each.
	SelectCombined
)

// Selection is a tagged source-selection request. The zero value means
// uniform random among all registered sources.
type Selection struct {
	Mode SelectionMode
	Name string // used by SelectExplicit only
}

// Registry holds the fitted model for every configured variability
// source. It is built once and immutable afterwards.
type Registry struct {
	models   map[string]Model
	names    []string // sorted, for reproducible random selection
	combined Model
	dim      int
}

// NewRegistry fits one model per source. Kinds maps source id to model
// kind; missing entries default to KindParametric. All sources must
// share the same feature dimensionality.
func NewRegistry(sources map[string]dataset.Matrix, kinds map[string]ModelKind) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	logger := log.With().Str("component", "variability").Logger()

	r := &Registry{
		models: make(map[string]Model, len(sources)),
		names:  names,
	}
	for _, name := range names {
		kind := kinds[name]
		m, err := fitCached(sources[name], kind)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		if r.dim == 0 {
			r.dim = m.Dim()
		} else if m.Dim() != r.dim {
			return nil, fmt.Errorf("%w: source %q has dimension %d, want %d",
				dataset.ErrDimensionMismatch, name, m.Dim(), r.dim)
		}
		r.models[name] = m
		logger.Debug().
			Str("source", name).
			Str("kind", string(kind)).
			Int("dimension", m.Dim()).
			Int("rows", sources[name].Rows()).
			Msg("fitted variability source")
	}

	members := make([]Model, len(names))
	for i, name := range names {
		members[i] = r.models[name]
	}
	r.combined = &compositeModel{members: members}

	return r, nil
}

// Dim returns the shared feature dimensionality of all fitted models.
func (r *Registry) Dim() int {
	return r.dim
}

// Names returns the registered source ids, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Has reports whether a source id is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.models[name]
	return ok
}

// Resolve returns the model for one draw. SelectRandom consumes one
// value from rng so resolution is reproducible; the other modes leave
// rng untouched.
func (r *Registry) Resolve(sel Selection, rng *rand.Rand) (Model, error) {
	switch sel.Mode {
	case SelectExplicit:
		m, ok := r.models[sel.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sel.Name)
		}
		return m, nil
	case SelectRandom:
		return r.models[r.names[rng.Intn(len(r.names))]], nil
	case SelectCombined:
		return r.combined, nil
	default:
		return nil, fmt.Errorf("%w: selection mode %d", ErrUnknownSource, sel.Mode)
	}
}
