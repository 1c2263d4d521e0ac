package docmodel

import "strings"

// TypeKind discriminates the TypeRef variant.
type TypeKind int

const (
	// KindPrimitive is a built-in scalar (string, bool, numeric kinds).
	KindPrimitive TypeKind = iota
	// KindReference is a named non-primitive type; may resolve to a
	// Declaration or an EnumDecl by name.
	KindReference
	// KindCollection is a slice, array or map.
	KindCollection
	// KindNullable is a pointer.
	KindNullable
)

// TypeRef is a type reference resolved once during analysis. Consumers walk
// the variant instead of re-parsing raw type text.
type TypeRef struct {
	Kind TypeKind
	// Name is the primitive name or the unqualified referenced identifier.
	// Empty for collections and nullables.
	Name string
	// Elem is the wrapped type for collections and nullables.
	Elem *TypeRef
}

func (r TypeRef) clone() TypeRef {
	c := r
	if r.Elem != nil {
		e := r.Elem.clone()
		c.Elem = &e
	}
	return c
}

// Unwrap strips nullable and collection wrappers and returns the innermost
// reference.
func (r TypeRef) Unwrap() TypeRef {
	for r.Elem != nil {
		r = *r.Elem
	}
	return r
}

// Named returns the innermost type name after stripping wrappers.
func (r TypeRef) Named() string { return r.Unwrap().Name }

// IsCollection reports whether the outermost kind is a collection.
func (r TypeRef) IsCollection() bool { return r.Kind == KindCollection }

// ReferencesIdentifier reports whether the reference is a bare or nullable
// named type, the shape eligible for enum resolution.
func (r TypeRef) ReferencesIdentifier() bool {
	if r.Kind == KindNullable && r.Elem != nil {
		r = *r.Elem
	}
	return r.Kind == KindReference
}

var integerNames = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "rune": true,
}

var floatNames = map[string]bool{"float32": true, "float64": true}

// IsPrimitiveName reports whether name is a built-in scalar type name.
func IsPrimitiveName(name string) bool {
	return name == "string" || name == "bool" || name == "any" ||
		integerNames[name] || floatNames[name]
}

// IsString reports whether the innermost type is string.
func (r TypeRef) IsString() bool { return r.Unwrap().Name == "string" }

// IsBool reports whether the innermost type is bool.
func (r TypeRef) IsBool() bool { return r.Unwrap().Name == "bool" }

// IsInteger reports whether the innermost type is an integer kind.
func (r TypeRef) IsInteger() bool { return integerNames[r.Unwrap().Name] }

// IsFloat reports whether the innermost type is a floating kind.
func (r TypeRef) IsFloat() bool { return floatNames[r.Unwrap().Name] }

// UnqualifyTypeName strips a package qualifier and generic arguments from a
// type name: "models.Sku" -> "Sku", "Tagged[string]" -> "Tagged".
func UnqualifyTypeName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// ParseTypeRef builds a TypeRef from raw type text. The analyzer feeds it
// rendered ast expressions; tests feed it literals.
func ParseTypeRef(raw string) TypeRef {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "*"):
		elem := ParseTypeRef(raw[1:])
		return TypeRef{Kind: KindNullable, Elem: &elem}
	case strings.HasPrefix(raw, "[]"):
		elem := ParseTypeRef(raw[2:])
		return TypeRef{Kind: KindCollection, Elem: &elem}
	case strings.HasPrefix(raw, "[") && strings.Contains(raw, "]"):
		// fixed-size array
		elem := ParseTypeRef(raw[strings.IndexByte(raw, ']')+1:])
		return TypeRef{Kind: KindCollection, Elem: &elem}
	case strings.HasPrefix(raw, "map["):
		depth := 0
		for i := 3; i < len(raw); i++ {
			switch raw[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					elem := ParseTypeRef(raw[i+1:])
					return TypeRef{Kind: KindCollection, Elem: &elem}
				}
			}
		}
		return TypeRef{Kind: KindCollection, Elem: &TypeRef{Kind: KindReference}}
	}
	name := UnqualifyTypeName(raw)
	if IsPrimitiveName(name) {
		return TypeRef{Kind: KindPrimitive, Name: name}
	}
	return TypeRef{Kind: KindReference, Name: name}
}
