package strategy

import (
	"fmt"
	"sort"
)

// Registry resolves estimators by name
type Registry struct {
	constructors map[string]func() Estimator
}

// NewRegistry returns a registry with the built-in estimators
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]func() Estimator)}
	r.Register("weather", func() Estimator { return NewWeatherEstimator() })
	r.Register("form", func() Estimator { return NewFormEstimator() })
	r.Register("course_fit", func() Estimator { return NewCourseFitEstimator() })
	return r
}

// Register adds or replaces a constructor
func (r *Registry) Register(name string, build func() Estimator) {
	r.constructors[name] = build
}

// Names returns registered estimator names
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the named estimator. "combined" blends the named components
// (all built-ins when none are given) with the supplied weights.
func (r *Registry) Resolve(name string, components []string, weights []float64) (Estimator, error) {
	if name != "combined" {
		build, ok := r.constructors[name]
		if !ok {
			return nil, fmt.Errorf("unknown estimator %q", name)
		}
		return build(), nil
	}

	if len(components) == 0 {
		components = r.Names()
	}
	estimators := make([]Estimator, 0, len(components))
	for _, component := range components {
		if component == "combined" {
			return nil, fmt.Errorf("combined estimator cannot contain itself")
		}
		e, err := r.Resolve(component, nil, nil)
		if err != nil {
			return nil, err
		}
		estimators = append(estimators, e)
	}
	if len(weights) == 0 {
		weights = nil
	}
	return NewCombinedEstimator(estimators, weights)
}
