package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Empty and single characters
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "single digit", input: "1", want: "1"},

		// Separators
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "kebab-case", input: "api-client", want: "ApiClient"},
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "path-like", input: "/api/v1/users", want: "ApiV1Users"},
		{name: "spaces", input: "call task", want: "CallTask"},
		{name: "double underscore", input: "double__under", want: "DoubleUnder"},
		{name: "brackets", input: "Response[User]", want: "ResponseUser"},

		// Already cased
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "all caps", input: "API", want: "API"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},

		// Unicode characters
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "japanese characters", input: "日本語_test", want: "日本語Test"},

		// Numbers
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
		{name: "leading number", input: "123_abc", want: "123Abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid", input: "Pet", want: "Pet"},
		{name: "strips punctuation", input: "Pet-Store.v2", want: "PetStorev2"},
		{name: "leading digit", input: "2fa", want: "T2fa"},
		{name: "reserved word", input: "class", want: "class_"},
		{name: "dollar allowed", input: "$meta", want: "$meta"},
		{name: "empty", input: "", want: Placeholder},
		{name: "nothing valid", input: "-./", want: Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Root"))
	assert.False(t, IsIdentifier("9lives"))
	assert.False(t, IsIdentifier("a-b"))
	assert.False(t, IsIdentifier(""))
}
