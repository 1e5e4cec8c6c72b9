package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMixins_InlinesMembers(t *testing.T) {
	m := New()
	m.Shapes[ShapeID{"ns", "Timestamps"}] = &Shape{
		Type: "structure",
		Members: map[string]*Member{
			"createdAt": {Target: "smithy.api#Timestamp"},
		},
	}
	m.Shapes[ShapeID{"ns", "User"}] = &Shape{
		Type:   "structure",
		Mixins: []Ref{{Target: "ns#Timestamps"}},
		Members: map[string]*Member{
			"name": {Target: "smithy.api#String"},
		},
	}

	require.NoError(t, FlattenMixins(m))

	user := m.Shapes[ShapeID{"ns", "User"}]
	assert.Empty(t, user.Mixins)
	assert.Len(t, user.Members, 2)
	assert.Equal(t, "smithy.api#Timestamp", user.Members["createdAt"].Target)
	assert.Equal(t, "smithy.api#String", user.Members["name"].Target)
}

func TestFlattenMixins_OwnMembersWin(t *testing.T) {
	m := New()
	m.Shapes[ShapeID{"ns", "Base"}] = &Shape{
		Type:    "structure",
		Members: map[string]*Member{"id": {Target: "smithy.api#String"}},
	}
	m.Shapes[ShapeID{"ns", "Override"}] = &Shape{
		Type:    "structure",
		Mixins:  []Ref{{Target: "ns#Base"}},
		Members: map[string]*Member{"id": {Target: "smithy.api#Long"}},
	}

	require.NoError(t, FlattenMixins(m))
	assert.Equal(t, "smithy.api#Long", m.Shapes[ShapeID{"ns", "Override"}].Members["id"].Target)
}

func TestFlattenMixins_TransitiveChain(t *testing.T) {
	m := New()
	m.Shapes[ShapeID{"ns", "A"}] = &Shape{
		Type:    "structure",
		Members: map[string]*Member{"a": {Target: "smithy.api#String"}},
	}
	m.Shapes[ShapeID{"ns", "B"}] = &Shape{
		Type:   "structure",
		Mixins: []Ref{{Target: "ns#A"}},
	}
	m.Shapes[ShapeID{"ns", "C"}] = &Shape{
		Type:   "structure",
		Mixins: []Ref{{Target: "ns#B"}},
	}

	require.NoError(t, FlattenMixins(m))
	assert.Equal(t, "smithy.api#String", m.Shapes[ShapeID{"ns", "C"}].Members["a"].Target)
}

func TestFlattenMixins_CycleFails(t *testing.T) {
	m := New()
	m.Shapes[ShapeID{"ns", "A"}] = &Shape{Type: "structure", Mixins: []Ref{{Target: "ns#B"}}}
	m.Shapes[ShapeID{"ns", "B"}] = &Shape{Type: "structure", Mixins: []Ref{{Target: "ns#A"}}}

	err := FlattenMixins(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestFlattenMixins_MissingTargetFails(t *testing.T) {
	m := New()
	m.Shapes[ShapeID{"ns", "A"}] = &Shape{Type: "structure", Mixins: []Ref{{Target: "ns#Gone"}}}

	err := FlattenMixins(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ns#Gone")
}

func TestTransformerByName(t *testing.T) {
	transform, err := TransformerByName("flatten-mixins")
	require.NoError(t, err)
	assert.NotNil(t, transform)

	_, err = TransformerByName("does-not-exist")
	assert.Error(t, err)
}
