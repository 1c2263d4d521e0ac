package renderer

import (
	"unicode"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// memberName converts an exported Go field name to the camelCase spelling
// used in Bicep resource bodies.
func memberName(m *docmodel.Member) string {
	return lowerCamel(m.Name)
}

// lowerCamel lowercases the leading uppercase run of a PascalCase name,
// keeping the last rune of an acronym when a lowercase letter follows:
// "Name" -> "name", "IPAddress" -> "ipAddress", "ID" -> "id".
func lowerCamel(s string) string {
	runes := []rune(s)
	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		i++
	}
	if i == 0 {
		return s
	}
	if i < len(runes) && i > 1 {
		i--
	}
	for j := 0; j < i; j++ {
		runes[j] = unicode.ToLower(runes[j])
	}
	return string(runes)
}
