package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	names := []string{"Root", "Node", "Leaf", "Tag", "Owner"}

	tests := []struct {
		name          string
		items         []string
		offset, limit int
		want          []string
	}{
		{"default limit returns all", names, 0, 0, names},
		{"negative limit uses default", names, 0, -1, names},
		{"explicit limit", names, 0, 2, []string{"Root", "Node"}},
		{"offset only", names, 2, 0, []string{"Leaf", "Tag", "Owner"}},
		{"offset and limit", names, 1, 2, []string{"Node", "Leaf"}},
		{"last page is short", names, 3, 10, []string{"Tag", "Owner"}},
		{"offset past end", names, 5, 2, nil},
		{"negative offset", names, -1, 2, nil},
		{"no declarations", nil, 0, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestMatchGlobName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"Pet", "Pet", true},
		{"PetTag", "Pet", false},
		{"PetTag", "Pet*", true},
		{"UserAddress", "*Address", true},
		{"Tree", "T??e", true},
		{"Forest", "T*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlobName(tt.name, tt.pattern))
		})
	}
}

func TestValidateGlobPattern(t *testing.T) {
	assert.NoError(t, validateGlobPattern(""))
	assert.NoError(t, validateGlobPattern("Pet"))
	assert.NoError(t, validateGlobPattern("Pet*"))
	assert.Error(t, validateGlobPattern("Pet["))
}

func TestPaginate_Limits(t *testing.T) {
	items := make([]int, 1500)
	for i := range items {
		items[i] = i
	}
	assert.Len(t, paginate(items, 0, 0), cfg.ListLimit)
	assert.Len(t, paginate(items, 0, 1500), cfg.MaxLimit)
	assert.Equal(t, []int{1, 2}, paginate(items[:3], 1, math.MaxInt))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "failed to open <path>: no such file",
		sanitizeError(fmt.Errorf("failed to open /home/dev/schemas/pet.json: no such file")))
	assert.Equal(t, "resolving <path> from <path>",
		sanitizeError(fmt.Errorf("resolving /tmp/a.json from /tmp/b.json")))
	assert.Equal(t, `unresolved reference "#/$defs/Missing"`,
		sanitizeError(fmt.Errorf(`unresolved reference "#/$defs/Missing"`)))
}
