package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

const widgetSource = `package widgets

// Widget manages widgets.
//
//docgen:resource Widget
//docgen:heading "Widget" "Manages widgets in the workspace."
//docgen:metadata "title" "Widget"
//docgen:metadata 2 "layout" "resource"
//docgen:example "Basic" "A minimal widget." lang=bicep
// resource example 'Widget' = {
//   name: 'demo'
// }
//docgen:section "Notes" "Widgets are eventually consistent."
type Widget struct {
	Base

	// The widget name.
	Name string ` + "`docgen:\"required,identifier\"`" + `

	// Desired color.
	Color *Color

	// Current size.
	Size int ` + "`docgen:\"readonly\"`" + `

	hidden string
}

type Base struct {
	// Free-form labels.
	Labels []string
}

type Color string

const (
	ColorRed   Color = "Red"
	ColorGreen Color = "Green"
	ColorBlue  Color = "Blue"
)
`

func analyzeSource(t *testing.T, source string) *docmodel.AnalysisResult {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.go")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	result := AnalyzeFiles([]string{path})
	return &result
}

func TestAnalyzeFileExtractsDeclaration(t *testing.T) {
	result := analyzeSource(t, widgetSource)

	require.Len(t, result.Declarations, 2)
	d := result.Declaration("Widget")
	require.NotNil(t, d)

	assert.Equal(t, "Widget", d.ResourceTypeName)
	assert.True(t, d.IsResource())
	assert.Equal(t, "widgets", d.Package)
	assert.Equal(t, []string{"Base"}, d.BaseTypeNames)
	assert.NotZero(t, d.Line)

	base := result.Declaration("Base")
	require.NotNil(t, base)
	assert.False(t, base.IsResource(), "declaration without resource directive is scaffolding")
}

func TestAnalyzeFileExtractsDirectives(t *testing.T) {
	d := analyzeSource(t, widgetSource).Declaration("Widget")
	require.NotNil(t, d)

	require.NotNil(t, d.Heading)
	assert.Equal(t, "Widget", d.Heading.Title)
	assert.Equal(t, "Manages widgets in the workspace.", d.Heading.Description)

	require.Len(t, d.FrontMatter, 2)
	title, ok := d.FrontMatter[0].Get("title")
	require.True(t, ok)
	assert.Equal(t, "Widget", title)
	layout, ok := d.FrontMatter[1].Get("layout")
	require.True(t, ok)
	assert.Equal(t, "resource", layout)

	require.Len(t, d.Examples, 1)
	ex := d.Examples[0]
	assert.Equal(t, "Basic", ex.Title)
	assert.Equal(t, "A minimal widget.", ex.Description)
	assert.Equal(t, "bicep", ex.Language)
	assert.Contains(t, ex.Code, "resource example 'Widget' = {")
	assert.Contains(t, ex.Code, "  name: 'demo'")

	require.Len(t, d.CustomSections, 1)
	assert.Equal(t, "Notes", d.CustomSections[0].Title)
}

func TestAnalyzeFileExtractsMembers(t *testing.T) {
	d := analyzeSource(t, widgetSource).Declaration("Widget")
	require.NotNil(t, d)

	require.Len(t, d.Members, 3, "unexported fields are not members")

	name := d.Member("Name")
	require.NotNil(t, name)
	assert.True(t, name.Required)
	assert.True(t, name.Identifier)
	assert.False(t, name.ReadOnly)
	assert.Equal(t, "The widget name.", name.Description)
	assert.Equal(t, "string", name.Type)

	color := d.Member("Color")
	require.NotNil(t, color)
	assert.Equal(t, "*Color", color.Type)
	assert.True(t, color.Ref.ReferencesIdentifier())
	assert.False(t, color.IsEnum, "enum mapping happens in the resolver, not here")

	size := d.Member("Size")
	require.NotNil(t, size)
	assert.True(t, size.ReadOnly)
}

func TestAnalyzeFileCollectsEnums(t *testing.T) {
	result := analyzeSource(t, widgetSource)

	require.Len(t, result.Enums, 1)
	e := result.Enums[0]
	assert.Equal(t, "Color", e.Name)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, e.Values)
}

func TestEnumValueFallsBackToConstName(t *testing.T) {
	source := `package widgets

type Level int

const (
	LevelLow Level = iota
	LevelHigh
)
`
	result := analyzeSource(t, source)
	require.Len(t, result.Enums, 1)
	assert.Equal(t, []string{"Low", "High"}, result.Enums[0].Values)
}

func TestUnparseableFileIsSkippedWithDiagnostic(t *testing.T) {
	result := analyzeSource(t, "package broken\nfunc {")

	assert.Empty(t, result.Declarations)
	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[0].Message, "parse error")
}

func TestHeadingFirstOneWins(t *testing.T) {
	source := `package widgets

//docgen:resource Widget
//docgen:heading "First" "one"
//docgen:heading "Second" "two"
type Widget struct{}
`
	d := analyzeSource(t, source).Declaration("Widget")
	require.NotNil(t, d)
	require.NotNil(t, d.Heading)
	assert.Equal(t, "First", d.Heading.Title)
}

func TestMetadataFirstWriteWinsWithinBlock(t *testing.T) {
	source := `package widgets

//docgen:resource Widget
//docgen:metadata "title" "first"
//docgen:metadata "Title" "second"
type Widget struct{}
`
	d := analyzeSource(t, source).Declaration("Widget")
	require.NotNil(t, d)
	require.Len(t, d.FrontMatter, 1)
	v, ok := d.FrontMatter[0].Get("title")
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestUnknownDirectiveYieldsDiagnostic(t *testing.T) {
	source := `package widgets

//docgen:resource Widget
//docgen:frobnicate "x"
type Widget struct{}
`
	result := analyzeSource(t, source)
	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[0].Message, "unknown directive")
}

func TestEmbeddedPointerAndQualifiedBases(t *testing.T) {
	source := `package widgets

import "time"

//docgen:resource Widget
type Widget struct {
	*Base
	time.Time
	Name string
}

type Base struct{}
`
	d := analyzeSource(t, source).Declaration("Widget")
	require.NotNil(t, d)
	assert.Equal(t, []string{"Base", "Time"}, d.BaseTypeNames)
}
