package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtag/internal/models"
	"readtag/internal/validation"
)

func intPtr(i int) *int { return &i }

func validDocument() models.Document {
	return models.Document{
		ID:       "01abc",
		URL:      "https://read.readwise.io/read/01abc",
		Category: models.CategoryArticle,
		Location: models.LocationArchive,
		Tags: map[string]models.TagEntry{
			"go": {Name: "go", Type: models.TagTypeManual, Created: 1700000000000},
		},
	}
}

func TestValidator_ValidDocumentList(t *testing.T) {
	v := validation.New()

	list := models.DocumentList{
		Count:   intPtr(1),
		Results: []models.Document{validDocument()},
	}

	assert.NoError(t, v.Validate(list))
}

func TestValidator_EmptyResultsAreValid(t *testing.T) {
	v := validation.New()

	list := models.DocumentList{Count: intPtr(0), Results: []models.Document{}}

	assert.NoError(t, v.Validate(list))
}

func TestValidator_ReportsNestedJSONPaths(t *testing.T) {
	v := validation.New()

	doc := validDocument()
	doc.URL = "not a url"
	doc.Category = "podcast"
	list := models.DocumentList{Count: intPtr(1), Results: []models.Document{doc}}

	err := v.Validate(list)
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be a valid URL", verr.Fields["results[0].url"])
	assert.Contains(t, verr.Fields["results[0].category"], "must be one of")
}

func TestValidator_MissingCountAndResults(t *testing.T) {
	v := validation.New()

	err := v.Validate(models.DocumentList{})
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["count"])
	assert.Equal(t, "is required", verr.Fields["results"])
}

func TestValidator_TagEntryType(t *testing.T) {
	v := validation.New()

	doc := validDocument()
	doc.Tags["bad"] = models.TagEntry{Name: "bad", Type: "imported"}

	err := v.Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}
