package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontMatterBlockFirstWriteWins(t *testing.T) {
	b := NewFrontMatterBlock()
	require.True(t, b.Set("title", "first"))
	require.False(t, b.Set("Title", "second"), "case-insensitive duplicate must be dropped")

	v, ok := b.Get("TITLE")
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, b.Len())
}

func TestFrontMatterBlockSortedKeys(t *testing.T) {
	b := NewFrontMatterBlock()
	b.Set("zebra", "1")
	b.Set("alpha", "2")
	b.Set("Beta", "3")

	assert.Equal(t, []string{"Beta", "alpha", "zebra"}, b.SortedKeys())
}

func TestDeclarationBlockFillsGaps(t *testing.T) {
	d := &Declaration{}
	d.Block(3).Set("key", "value")

	require.Len(t, d.FrontMatter, 3)
	assert.Equal(t, 0, d.FrontMatter[0].Len())
	assert.Equal(t, 0, d.FrontMatter[1].Len())
	assert.Equal(t, 1, d.FrontMatter[2].Len())
}

func TestMemberCloneIsIndependent(t *testing.T) {
	m := &Member{
		Name:       "Color",
		EnumValues: []string{"Red", "Green"},
		Ref:        ParseTypeRef("*Color"),
	}
	c := m.Clone()
	c.EnumValues[0] = "Blue"
	c.Ref.Elem.Name = "Other"

	assert.Equal(t, "Red", m.EnumValues[0])
	assert.Equal(t, "Color", m.Ref.Elem.Name)
}

func TestDeclarationMemberFilters(t *testing.T) {
	d := &Declaration{Members: []*Member{
		{Name: "Name", Required: true},
		{Name: "Size", ReadOnly: true},
		{Name: "Color"},
	}}

	assert.Len(t, d.WritableMembers(), 2)
	assert.Len(t, d.ReadOnlyMembers(), 1)
	assert.NotNil(t, d.Member("Size"))
	assert.Nil(t, d.Member("Missing"))
}

func TestAnalysisResultLookups(t *testing.T) {
	r := &AnalysisResult{
		Declarations: []*Declaration{
			{Name: "Base"},
			{Name: "Widget", ResourceTypeName: "Widget"},
		},
		Enums: []*EnumDecl{{Name: "Color", Values: []string{"Red"}}},
	}

	assert.NotNil(t, r.Declaration("Base"))
	assert.Nil(t, r.Declaration("Nope"))
	assert.NotNil(t, r.Enum("Color"))
	require.Len(t, r.Resources(), 1)
	assert.Equal(t, "Widget", r.Resources()[0].Name)
}
