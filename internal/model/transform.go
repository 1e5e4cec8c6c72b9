package model

import (
	"fmt"
	"sort"
)

// Transformer rewrites a model in place.
type Transformer func(*Model) error

var transformers = map[string]Transformer{
	"flatten-mixins": FlattenMixins,
}

// TransformerByName looks up a registered transformer.
func TransformerByName(name string) (Transformer, error) {
	transform, ok := transformers[name]
	if !ok {
		known := make([]string, 0, len(transformers))
		for k := range transformers {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown transformer %q (known: %v)", name, known)
	}
	return transform, nil
}

// FlattenMixins inlines mixin members into every shape that uses them and
// drops the mixin references, so consumers see fully materialized member
// sets. A shape's own members win over mixin-provided ones; later mixins
// win over earlier ones. Mixin cycles and dangling targets are errors.
func FlattenMixins(m *Model) error {
	memo := make(map[ShapeID]map[string]*Member, len(m.Shapes))
	for id := range m.Shapes {
		if _, err := flattenedMembers(m, id, make(map[ShapeID]bool), memo); err != nil {
			return err
		}
	}
	for id, shape := range m.Shapes {
		if len(shape.Mixins) == 0 {
			continue
		}
		shape.Members = memo[id]
		shape.Mixins = nil
	}
	return nil
}

func flattenedMembers(m *Model, id ShapeID, visiting map[ShapeID]bool, memo map[ShapeID]map[string]*Member) (map[string]*Member, error) {
	if members, done := memo[id]; done {
		return members, nil
	}
	if visiting[id] {
		return nil, fmt.Errorf("mixin cycle through %s", id)
	}
	visiting[id] = true
	defer delete(visiting, id)

	shape, ok := m.Shapes[id]
	if !ok {
		return nil, fmt.Errorf("mixin target %s not found", id)
	}

	merged := make(map[string]*Member)
	for _, mixin := range shape.Mixins {
		mixinID, err := ParseShapeID(mixin.Target)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", id, err)
		}
		members, err := flattenedMembers(m, mixinID, visiting, memo)
		if err != nil {
			return nil, err
		}
		for name, member := range members {
			merged[name] = member
		}
	}
	for name, member := range shape.Members {
		merged[name] = member
	}

	memo[id] = merged
	return merged, nil
}
