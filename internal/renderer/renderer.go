// Package renderer turns a resolved declaration into a deterministic
// Markdown document: front matter, heading, examples, argument and attribute
// references and trailing custom sections.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// placeholderTitle is used when neither a heading, a front-matter title nor
// a resource type name is available.
const placeholderTitle = "Resource"

// Renderer renders declarations against the full analysis result, which it
// needs for nested-type expansion.
type Renderer struct {
	result *docmodel.AnalysisResult
}

// New returns a renderer over the given result.
func New(result *docmodel.AnalysisResult) *Renderer {
	return &Renderer{result: result}
}

// FileName returns the output file name for a declaration: the lowercased
// resource type name with path separators flattened.
func FileName(d *docmodel.Declaration) string {
	name := strings.ToLower(d.ResourceTypeName)
	name = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(name)
	return name + ".md"
}

// Render produces the document for one resource-bearing declaration. The
// output is checked for structural validity before being returned; a check
// failure is an error for this declaration only.
func (r *Renderer) Render(d *docmodel.Declaration) (string, error) {
	var b strings.Builder

	r.writeFrontMatter(&b, d)
	r.writeHeading(&b, d)
	r.writeExamples(&b, d)
	r.writeArgumentReference(&b, d)
	r.writeAttributeReference(&b, d)
	r.writeCustomSections(&b, d)

	doc := b.String()
	if err := validateDocument(doc); err != nil {
		return "", fmt.Errorf("rendered document for %s is malformed: %w", d.Name, err)
	}
	return doc, nil
}

func (r *Renderer) writeFrontMatter(b *strings.Builder, d *docmodel.Declaration) {
	for _, block := range d.FrontMatter {
		b.WriteString("---\n")
		for _, key := range block.SortedKeys() {
			fmt.Fprintf(b, "%s: %q\n", key, block.Value(key))
		}
		b.WriteString("---\n\n")
	}
}

// headingTitle applies the title precedence: explicit heading, front-matter
// title of the first block, resource type name, fixed placeholder.
func headingTitle(d *docmodel.Declaration) string {
	if d.Heading != nil && d.Heading.Title != "" {
		return d.Heading.Title
	}
	if len(d.FrontMatter) > 0 {
		if title, ok := d.FrontMatter[0].Get("title"); ok && title != "" {
			return title
		}
	}
	if d.ResourceTypeName != "" {
		return d.ResourceTypeName
	}
	return placeholderTitle
}

func (r *Renderer) writeHeading(b *strings.Builder, d *docmodel.Declaration) {
	fmt.Fprintf(b, "# %s\n\n", headingTitle(d))

	if d.Heading != nil && d.Heading.Description != "" {
		b.WriteString(d.Heading.Description)
	} else {
		fmt.Fprintf(b, "Manages `%s` resources.", d.ResourceTypeName)
	}
	b.WriteString("\n\n")
}

func (r *Renderer) writeExamples(b *strings.Builder, d *docmodel.Declaration) {
	b.WriteString("## Example usage\n\n")
	if len(d.Examples) > 0 {
		for _, ex := range d.Examples {
			writeExample(b, ex)
		}
		return
	}
	r.writeSynthesizedExamples(b, d)
}

func writeExample(b *strings.Builder, ex docmodel.Example) {
	if ex.Title != "" {
		fmt.Fprintf(b, "### %s\n\n", ex.Title)
	}
	if ex.Description != "" {
		b.WriteString(ex.Description)
		b.WriteString("\n\n")
	}
	writeCodeBlock(b, ex.Language, ex.Code)
}

// writeCodeBlock emits a fenced block with the code trimmed of surrounding
// newlines and exactly one trailing newline.
func writeCodeBlock(b *strings.Builder, language, code string) {
	fmt.Fprintf(b, "```%s\n", language)
	b.WriteString(strings.Trim(code, "\n"))
	b.WriteString("\n```\n\n")
}

func (r *Renderer) writeSynthesizedExamples(b *strings.Builder, d *docmodel.Declaration) {
	var required, optional []*docmodel.Member
	for _, m := range d.WritableMembers() {
		if m.Required {
			required = append(required, m)
		} else {
			optional = append(optional, m)
		}
	}

	b.WriteString("### Basic\n\n")
	writeCodeBlock(b, "bicep", r.synthesizeSnippet(d, required))

	if len(optional) > 0 {
		b.WriteString("### Advanced\n\n")
		writeCodeBlock(b, "bicep", r.synthesizeSnippet(d, append(append([]*docmodel.Member(nil), required...), optional...)))
	}
}

func (r *Renderer) synthesizeSnippet(d *docmodel.Declaration, members []*docmodel.Member) string {
	var b strings.Builder
	fmt.Fprintf(&b, "resource example '%s' = {\n", d.ResourceTypeName)
	for _, m := range members {
		fmt.Fprintf(&b, "  %s: %s\n", memberName(m), placeholderValue(m))
	}
	b.WriteString("}")
	return b.String()
}

func (r *Renderer) writeArgumentReference(b *strings.Builder, d *docmodel.Declaration) {
	writable := d.WritableMembers()
	if len(writable) == 0 {
		return
	}
	b.WriteString("## Argument reference\n\n")
	b.WriteString("The following arguments are available:\n\n")

	for _, m := range orderArguments(writable) {
		r.writeMemberEntry(b, m, 0, true)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeAttributeReference(b *strings.Builder, d *docmodel.Declaration) {
	readOnly := d.ReadOnlyMembers()
	if len(readOnly) == 0 {
		return
	}
	b.WriteString("## Attribute reference\n\n")
	b.WriteString("The following attributes are exported:\n\n")

	sorted := sortByName(readOnly)
	for _, m := range sorted {
		r.writeMemberEntry(b, m, 0, false)
	}
	b.WriteString("\n")
}

// orderArguments lists required members before optional ones, each group
// sorted lexicographically by rendered name.
func orderArguments(members []*docmodel.Member) []*docmodel.Member {
	var required, optional []*docmodel.Member
	for _, m := range members {
		if m.Required {
			required = append(required, m)
		} else {
			optional = append(optional, m)
		}
	}
	return append(sortByName(required), sortByName(optional)...)
}

func sortByName(members []*docmodel.Member) []*docmodel.Member {
	out := append([]*docmodel.Member(nil), members...)
	sort.Slice(out, func(i, j int) bool { return memberName(out[i]) < memberName(out[j]) })
	return out
}

// writeMemberEntry renders one reference bullet. Nested declarations expand
// one level deep only; arguments carry Required/Optional markers, attributes
// do not.
func (r *Renderer) writeMemberEntry(b *strings.Builder, m *docmodel.Member, depth int, argument bool) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s- `%s` -", indent, memberName(m))
	if argument {
		if m.Required {
			b.WriteString(" (Required)")
		} else {
			b.WriteString(" (Optional)")
		}
	}
	if m.Description != "" {
		b.WriteString(" " + m.Description)
	}
	if m.IsEnum {
		b.WriteString(enumSuffix(m.EnumValues))
	}
	b.WriteString("\n")

	if depth > 0 {
		return
	}
	nested := r.result.Declaration(m.Ref.Named())
	if nested == nil {
		return
	}
	var children []*docmodel.Member
	if argument {
		children = orderArguments(nested.WritableMembers())
	} else {
		children = sortByName(nested.ReadOnlyMembers())
	}
	for _, child := range children {
		r.writeMemberEntry(b, child, depth+1, argument)
	}
}

// enumSuffix renders the value-list suffix. The comma before "or" is kept
// even for exactly two values.
func enumSuffix(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(" (Can be `%s`)", values[0])
	}
	quoted := make([]string, 0, len(values)-1)
	for _, v := range values[:len(values)-1] {
		quoted = append(quoted, "`"+v+"`")
	}
	return fmt.Sprintf(" (Can be %s, or `%s`)", strings.Join(quoted, ", "), values[len(values)-1])
}

func (r *Renderer) writeCustomSections(b *strings.Builder, d *docmodel.Declaration) {
	for _, sec := range d.CustomSections {
		fmt.Fprintf(b, "## %s\n\n", sec.Title)
		if sec.Description != "" {
			b.WriteString(sec.Description)
			b.WriteString("\n\n")
		}
	}
}
