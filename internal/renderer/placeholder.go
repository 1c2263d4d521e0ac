package renderer

import (
	"strings"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// placeholderValue picks a type-driven example value for a synthesized
// snippet. Enum members use their first declared value; string members whose
// name looks like a path get a path-like literal.
func placeholderValue(m *docmodel.Member) string {
	if m.IsEnum && len(m.EnumValues) > 0 {
		return "'" + m.EnumValues[0] + "'"
	}
	if m.Ref.IsCollection() {
		return "[]"
	}
	switch {
	case m.Ref.IsString():
		if strings.Contains(strings.ToLower(m.Name), "path") {
			return "'./path/to/file'"
		}
		return "'value'"
	case m.Ref.IsBool():
		return "true"
	case m.Ref.IsInteger():
		return "1"
	case m.Ref.IsFloat():
		return "1.0"
	}
	return "{}"
}
