package naming

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SynthesizedNames(t *testing.T) {
	r := NewRegistry(nil)

	short := r.Issue("#/a", Candidate{
		Ancestor: "CallTask",
		Path:     []string{"properties", "with", "properties", "asyncapi"},
	})
	assert.Equal(t, "CallTaskAsyncapi", short)

	full := r.Issue("#/b", Candidate{
		Ancestor: "CallTask",
		Path:     []string{"properties", "other", "properties", "asyncapi"},
	})
	assert.Equal(t, "CallTaskOtherAsyncapi", full)

	r.Issue("#/c", Candidate{Hint: "CallTaskWithAsyncapi"})
	numbered := r.Issue("#/d", Candidate{
		Ancestor: "CallTask",
		Path:     []string{"properties", "with", "properties", "asyncapi"},
	})
	assert.Equal(t, "CallTaskWithAsyncapi2", numbered)
}

func TestRegistry_Priority(t *testing.T) {
	hook := func(pointer string, _ []string) string {
		if pointer == "#/hooked" {
			return "FromHook"
		}
		return ""
	}
	r := NewRegistry(hook)

	assert.Equal(t, "Configured", r.Issue("#", Candidate{Hint: "Configured", Title: "Ignored"}))
	assert.Equal(t, "FromHook", r.Issue("#/hooked", Candidate{Title: "Ignored"}))
	assert.Equal(t, "PetOwner", r.Issue("#/$defs/owner", Candidate{Title: "pet owner", Path: []string{"$defs", "owner"}}))

	// Duplicate titles fall through to the path.
	assert.Equal(t, "Keeper", r.Issue("#/$defs/keeper", Candidate{Title: "pet owner", Path: []string{"$defs", "keeper"}}))
}

func TestRegistry_TitleFirstComeFirstServed(t *testing.T) {
	r := NewRegistry(nil)

	first := r.Issue("#/$defs/X", Candidate{Title: "Thing", Path: []string{"$defs", "X"}})
	second := r.Issue("#/$defs/Y", Candidate{Title: "Thing", Path: []string{"$defs", "Y"}})
	assert.Equal(t, "Thing", first)
	assert.Equal(t, "Y", second)

	// Issuing in the other order swaps which schema keeps the title.
	swapped := NewRegistry(nil)
	assert.Equal(t, "Thing", swapped.Issue("#/$defs/Y", Candidate{Title: "Thing", Path: []string{"$defs", "Y"}}))
	assert.Equal(t, "X", swapped.Issue("#/$defs/X", Candidate{Title: "Thing", Path: []string{"$defs", "X"}}))
}

func TestRegistry_StableAndUnique(t *testing.T) {
	r := NewRegistry(nil)
	first := r.Issue("#/$defs/node", Candidate{Path: []string{"$defs", "node"}})
	again := r.Issue("#/$defs/node", Candidate{Title: "Other"})
	assert.Equal(t, first, again)

	seen := map[string]string{}
	for i := 0; i < 20; i++ {
		ptr := fmt.Sprintf("#/x/%d", i)
		name := r.Issue(ptr, Candidate{Path: []string{"$defs", "node"}})
		prev, dup := seen[name]
		require.False(t, dup, "name %s issued for %s and %s", name, prev, ptr)
		seen[name] = ptr
	}
}

func TestRegistry_ReservesZ(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "z2", r.Issue("#/$defs/z", Candidate{Hint: "z"}))
}

func TestRegistry_PlaceholderAndSeed(t *testing.T) {
	first := NewRegistry(nil)
	assert.Equal(t, Placeholder, first.Issue("#", Candidate{}))
	first.Issue("#/$defs/a", Candidate{Path: []string{"$defs", "a"}})

	second := NewRegistry(nil)
	second.Seed(first)
	name, ok := second.Lookup("#/$defs/a")
	require.True(t, ok)
	assert.Equal(t, "A", name)

	owner, ok := second.Owner("A")
	require.True(t, ok)
	assert.Equal(t, "#/$defs/a", owner)
	assert.Equal(t, []string{"#", "#/$defs/a"}, second.Pointers())
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want []string
	}{
		{"properties dropped", []string{"properties", "with", "properties", "asyncapi"}, []string{"with", "asyncapi"}},
		{"keyword-named property", []string{"properties", "items"}, []string{"items"}},
		{"array items", []string{"properties", "tags", "items"}, []string{"tags", "Item"}},
		{"union member", []string{"anyOf", "1"}, []string{"Option", "1"}},
		{"map values", []string{"additionalProperties"}, []string{"Value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.path))
		})
	}
}
