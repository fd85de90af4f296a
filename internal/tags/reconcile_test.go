package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtag/internal/models"
)

func TestSort_DoesNotModifyInput(t *testing.T) {
	in := []string{"zeta", "alpha", "mu"}
	out := Sort(in)

	assert.Equal(t, []string{"alpha", "mu", "zeta"}, out)
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, in)
}

func TestSort_IsLocaleAware(t *testing.T) {
	// A byte-wise sort would put "Zebra" before "apple" and "éclair" last.
	out := Sort([]string{"éclair", "Zebra", "apple", "dog"})
	assert.Equal(t, []string{"apple", "dog", "éclair", "Zebra"}, out)
}

func TestStored(t *testing.T) {
	assert.Equal(t, []string{}, Stored(nil))

	doc := &models.Document{Tags: map[string]models.TagEntry{
		"reading": {Name: "reading", Type: models.TagTypeManual},
		"go":      {Name: "go", Type: models.TagTypeGenerated},
	}}
	assert.Equal(t, []string{"go", "reading"}, Stored(doc))
}

func TestCompare(t *testing.T) {
	diff := Compare([]string{"go", "reading"}, []string{"tools", "go"})

	assert.Equal(t, []string{"go", "reading"}, diff.Existing)
	assert.Equal(t, []string{"go", "tools"}, diff.Extracted)
	assert.Equal(t, []string{"tools"}, diff.Suggested)
	assert.Equal(t, []string{"go"}, diff.Overlap)
	assert.False(t, diff.Aligned)
}

func TestCompare_Aligned(t *testing.T) {
	assert.True(t, Compare([]string{"go", "x"}, []string{"go"}).Aligned)
	// Nothing extracted counts as a difference worth reviewing.
	assert.False(t, Compare([]string{"go"}, []string{}).Aligned)
}

func TestResolve(t *testing.T) {
	stored := []string{"go", "reading"}
	extracted := []string{"tools", "go"}
	picked := []string{"reading", "tools", "reading"}

	got, err := Resolve(models.UpdateModeOverwrite, stored, extracted, picked)
	require.NoError(t, err)
	assert.Equal(t, []string{"tools", "go"}, got)

	got, err = Resolve(models.UpdateModeCombine, stored, extracted, picked)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "reading", "tools"}, got)

	got, err = Resolve(models.UpdateModePick, stored, extracted, picked)
	require.NoError(t, err)
	assert.Equal(t, []string{"reading", "tools"}, got)

	_, err = Resolve("merge", stored, extracted, picked)
	assert.Error(t, err)
}

func TestSelection(t *testing.T) {
	s := NewSelection([]string{"reading", "go"}, []string{"tools", "go"})

	assert.Equal(t, []string{"go", "reading", "tools"}, s.Selected())
	assert.Equal(t, []string{"go", "reading"}, s.Stored)
	assert.Equal(t, []string{"go", "tools"}, s.Extracted)

	s.Deselect("reading")
	assert.False(t, s.IsSelected("reading"))
	s.Select("reading")
	assert.True(t, s.IsSelected("reading"))

	s.Deselect("go")
	s.Select("new")
	s.Select("")
	assert.Equal(t, []string{"new", "reading", "tools"}, s.Selected())
}
