package tests

import (
	"context"

	"posthoc/domain/table"
	"posthoc/internal/errors"
)

// Options carries caller-supplied auxiliary parameters, forwarded verbatim to
// the selected strategy. Strategies ignore keys they do not understand.
type Options map[string]interface{}

// Bool reads a boolean option with a default.
func (o Options) Bool(key string, def bool) bool {
	if o == nil {
		return def
	}
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// Int reads an integer option with a default. JSON decoding produces float64,
// so both are accepted.
func (o Options) Int(key string, def int) int {
	if o == nil {
		return def
	}
	switch v := o[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// Result is the outcome of one statistical test on a 2-row sub-table. PValue is
// the only field the engine contracts on; the rest is diagnostic metadata.
type Result struct {
	Statistic float64                `json:"statistic"`
	PValue    float64                `json:"p_value"`
	DF        int                    `json:"df"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Strategy is a pluggable hypothesis test over a contingency sub-table. Any
// implementation exposing a scalar p-value in [0,1] is acceptable; callers may
// register their own beyond the two built-ins.
type Strategy interface {
	Name() string
	Description() string
	Run(ctx context.Context, sub *table.Contingency, opts Options) (Result, error)
}

// Registry resolves test strategies by name at call time.
type Registry struct {
	strategies map[string]Strategy
	aliases    map[string]string
}

// NewRegistry creates a registry with the built-in strategies registered.
func NewRegistry() *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy),
		aliases:    make(map[string]string),
	}
	r.Register(NewChiSquareTest(), "chisq", "chi2", "chisq.test")
	r.Register(NewFisherExactTest(), "fisher.exact", "fisher.test", "fisher's exact")
	return r
}

// Register adds a strategy under its own name plus any aliases. Later
// registrations under the same name win, so callers can shadow built-ins.
func (r *Registry) Register(s Strategy, aliases ...string) {
	r.strategies[s.Name()] = s
	for _, a := range aliases {
		r.aliases[a] = s.Name()
	}
}

// Resolve looks up a strategy by name or alias. Unknown names fail with an
// UnknownStrategy error before any sub-table is processed.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	s, ok := r.strategies[name]
	if !ok {
		return nil, errors.UnknownStrategy(name)
	}
	return s, nil
}

// List returns the canonical names of all registered strategies.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	return names
}
