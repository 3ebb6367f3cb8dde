package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder is the name used when nothing usable survives sanitization.
const Placeholder = "Schema"

// ToPascalCase converts a string to PascalCase.
// Any rune that is not a letter or digit separates words.
// Example: "user_profile" -> "UserProfile"
// Example: "api client.v2" -> "ApiClientV2"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Sanitize makes s a valid JavaScript identifier: invalid runes are
// dropped, a leading digit gets a "T" prefix, reserved words get a "_"
// suffix and an empty result becomes Placeholder.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isIdentRune(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return Placeholder
	}
	if unicode.IsDigit([]rune(out)[0]) {
		out = "T" + out
	}
	if reservedWords[out] {
		out += "_"
	}
	return out
}

// IsIdentifier reports whether s can be used as-is as a declaration name.
func IsIdentifier(s string) bool {
	return s != "" && Sanitize(s) == s
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// reservedWords are JavaScript and TypeScript words that cannot name a const.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true, "implements": true,
	"interface": true, "package": true, "private": true, "protected": true,
	"public": true, "await": true, "arguments": true, "eval": true,
	"undefined": true, "NaN": true, "Infinity": true, "type": true,
}
