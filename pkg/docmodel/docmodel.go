// Package docmodel defines the in-memory model shared by the analyzer, the
// renderer and the checker: declarations, members, enums and the diagnostics
// gathered while building them.
package docmodel

import "fmt"

// Declaration is a documentable type-like source unit together with the
// documentation metadata attached to it.
type Declaration struct {
	// Name is the declared type name.
	Name string
	// Package is the Go package the declaration was found in.
	Package string
	// ResourceTypeName is the Bicep resource type the declaration documents.
	// Empty means the declaration is inheritance-only scaffolding and is
	// never rendered or checked itself.
	ResourceTypeName string
	// BaseTypeNames holds unqualified embedded type names, in source order.
	BaseTypeNames []string

	Members []*Member

	// FrontMatter holds front-matter blocks; index i is block i+1. Gaps are
	// filled with empty blocks so that block N is always renderable once any
	// directive targets it.
	FrontMatter []*FrontMatterBlock

	Heading        *Heading
	Examples       []Example
	CustomSections []CustomSection

	// File and Line locate the type declaration in the scanned source.
	File string
	Line int
}

// IsResource reports whether the declaration is marked as a documentable
// resource.
func (d *Declaration) IsResource() bool { return d.ResourceTypeName != "" }

// Member returns the member with the given name, or nil.
func (d *Declaration) Member(name string) *Member {
	for _, m := range d.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// WritableMembers returns all members that are not read-only.
func (d *Declaration) WritableMembers() []*Member {
	var out []*Member
	for _, m := range d.Members {
		if !m.ReadOnly {
			out = append(out, m)
		}
	}
	return out
}

// ReadOnlyMembers returns all read-only members.
func (d *Declaration) ReadOnlyMembers() []*Member {
	var out []*Member
	for _, m := range d.Members {
		if m.ReadOnly {
			out = append(out, m)
		}
	}
	return out
}

// Block returns front-matter block n (1-indexed), growing the list with
// empty blocks as needed.
func (d *Declaration) Block(n int) *FrontMatterBlock {
	if n < 1 {
		n = 1
	}
	for len(d.FrontMatter) < n {
		d.FrontMatter = append(d.FrontMatter, NewFrontMatterBlock())
	}
	return d.FrontMatter[n-1]
}

// Heading is the document title and its introductory paragraph.
type Heading struct {
	Title       string
	Description string
}

// Member is a documented field of a Declaration.
type Member struct {
	Name        string
	Type        string // raw type text as written in source
	Ref         TypeRef
	Description string

	Required   bool
	ReadOnly   bool
	Identifier bool

	IsEnum     bool
	EnumValues []string
}

// Clone returns a deep copy. Inherited members are copied, never shared, so
// base and derived declarations can diverge independently afterwards.
func (m *Member) Clone() *Member {
	c := *m
	c.EnumValues = append([]string(nil), m.EnumValues...)
	c.Ref = m.Ref.clone()
	return &c
}

// Example is a usage example appended in discovery order.
type Example struct {
	Title       string
	Description string
	Code        string
	Language    string
}

// CustomSection is a free-form trailing section.
type CustomSection struct {
	Title       string
	Description string
}

// EnumDecl is a free-standing enum: a named type with an ordered value list.
type EnumDecl struct {
	Name   string
	Values []string
	File   string
	Line   int
}

// AnalysisResult is the model gathered across all scanned files in one run.
// It is produced fresh per invocation and threaded by value between phases.
type AnalysisResult struct {
	Declarations []*Declaration
	Enums        []*EnumDecl
	Diagnostics  []Diagnostic
}

// Declaration looks up a declaration by type name.
func (r *AnalysisResult) Declaration(name string) *Declaration {
	for _, d := range r.Declarations {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Enum looks up an enum declaration by type name.
func (r *AnalysisResult) Enum(name string) *EnumDecl {
	for _, e := range r.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Resources returns the resource-bearing declarations in discovery order.
func (r *AnalysisResult) Resources() []*Declaration {
	var out []*Declaration
	for _, d := range r.Declarations {
		if d.IsResource() {
			out = append(out, d)
		}
	}
	return out
}

// Diagnose records a non-fatal finding against a source location.
func (r *AnalysisResult) Diagnose(file string, line int, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostic is a non-fatal finding emitted during analysis or resolution.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return d.Message
	}
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}
