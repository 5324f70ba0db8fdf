package entity

import "fmt"

// Registry holds the configured types in configuration order.
type Registry struct {
	types []Type
	byID  map[string]int
}

func NewRegistry(types ...Type) (*Registry, error) {
	r := &Registry{
		types: make([]Type, 0, len(types)),
		byID:  make(map[string]int, len(types)),
	}
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidType, t.ID)
		}
		r.byID[t.ID] = len(r.types)
		r.types = append(r.types, t)
	}
	return r, nil
}

func (r *Registry) Get(id string) (Type, error) {
	i, ok := r.byID[id]
	if !ok {
		return Type{}, fmt.Errorf("%w: %s", ErrUnknownType, id)
	}
	return r.types[i], nil
}

// All returns the types in configuration order.
func (r *Registry) All() []Type {
	out := make([]Type, len(r.types))
	copy(out, r.types)
	return out
}
