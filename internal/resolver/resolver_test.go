package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

func decl(name string, bases []string, members ...*docmodel.Member) *docmodel.Declaration {
	return &docmodel.Declaration{Name: name, BaseTypeNames: bases, Members: members}
}

func member(name string) *docmodel.Member {
	return &docmodel.Member{Name: name, Type: "string", Ref: docmodel.ParseTypeRef("string")}
}

func TestInheritanceMergesBaseMembers(t *testing.T) {
	base := decl("Base", nil, member("Labels"), member("Name"))
	derived := decl("Widget", []string{"Base"}, member("Size"))
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{derived, base}}

	Resolve(&r)

	require.Len(t, derived.Members, 3)
	assert.NotNil(t, derived.Member("Labels"))
	assert.NotNil(t, derived.Member("Name"))
}

func TestInheritanceOwnMemberWins(t *testing.T) {
	base := decl("Base", nil, &docmodel.Member{Name: "Name", Description: "base description"})
	derived := decl("Widget", []string{"Base"}, &docmodel.Member{Name: "Name", Description: "own description"})
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{derived, base}}

	Resolve(&r)

	require.Len(t, derived.Members, 1)
	assert.Equal(t, "own description", derived.Member("Name").Description)
}

func TestInheritedMembersAreDeepCopies(t *testing.T) {
	base := decl("Base", nil, &docmodel.Member{Name: "Color", Ref: docmodel.ParseTypeRef("Color")})
	derived := decl("Widget", []string{"Base"})
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{derived, base}}

	Resolve(&r)

	derived.Member("Color").Description = "changed"
	assert.Empty(t, base.Member("Color").Description)
}

func TestMultiLevelInheritancePropagatesRegardlessOfOrder(t *testing.T) {
	// discovery order deliberately lists the most derived declaration first
	grandBase := decl("GrandBase", nil, member("Root"))
	middle := decl("Middle", []string{"GrandBase"}, member("Mid"))
	leaf := decl("Leaf", []string{"Middle"}, member("Own"))
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{leaf, middle, grandBase}}

	Resolve(&r)

	assert.NotNil(t, leaf.Member("Root"), "grand-base member must reach the leaf")
	assert.NotNil(t, leaf.Member("Mid"))
	assert.NotNil(t, middle.Member("Root"))
}

func TestMissingBaseYieldsDiagnostic(t *testing.T) {
	derived := decl("Widget", []string{"Nowhere"})
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{derived}}

	Resolve(&r)

	require.NotEmpty(t, r.Diagnostics)
	assert.Contains(t, r.Diagnostics[0].Message, "Nowhere")
}

func TestInheritanceCycleYieldsDiagnostic(t *testing.T) {
	a := decl("A", []string{"B"}, member("FromA"))
	b := decl("B", []string{"A"}, member("FromB"))
	r := docmodel.AnalysisResult{Declarations: []*docmodel.Declaration{a, b}}

	Resolve(&r)

	var found bool
	for _, d := range r.Diagnostics {
		if strings.Contains(d.Message, "cycle") {
			found = true
		}
	}
	assert.True(t, found, "cycle must be diagnosed, got %v", r.Diagnostics)
}

func TestEnumMappingExactResolvedName(t *testing.T) {
	colorMember := &docmodel.Member{Name: "Color", Type: "Color", Ref: docmodel.ParseTypeRef("Color")}
	nullable := &docmodel.Member{Name: "Tint", Type: "*Color", Ref: docmodel.ParseTypeRef("*Color")}
	other := &docmodel.Member{Name: "Background", Type: "BackgroundColor", Ref: docmodel.ParseTypeRef("BackgroundColor")}
	collection := &docmodel.Member{Name: "Palette", Type: "[]Color", Ref: docmodel.ParseTypeRef("[]Color")}
	d := decl("Widget", nil, colorMember, nullable, other, collection)
	r := docmodel.AnalysisResult{
		Declarations: []*docmodel.Declaration{d},
		Enums:        []*docmodel.EnumDecl{{Name: "Color", Values: []string{"Red", "Green", "Blue"}}},
	}

	Resolve(&r)

	assert.True(t, colorMember.IsEnum)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, colorMember.EnumValues)
	assert.True(t, nullable.IsEnum, "nullable identifier reference is eligible")
	assert.False(t, other.IsEnum, "resolution is by exact resolved name, not substring")
	assert.False(t, collection.IsEnum, "collections are not identifier references")
}

func TestEnumMappingReplacesValuesWholesale(t *testing.T) {
	m := &docmodel.Member{Name: "Color", Ref: docmodel.ParseTypeRef("Color"), EnumValues: []string{"Old"}}
	d := decl("Widget", nil, m)
	r := docmodel.AnalysisResult{
		Declarations: []*docmodel.Declaration{d},
		Enums:        []*docmodel.EnumDecl{{Name: "Color", Values: []string{"New"}}},
	}

	Resolve(&r)

	assert.Equal(t, []string{"New"}, m.EnumValues)
}
