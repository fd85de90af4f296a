package models

// FetchedDocument pairs a document with the hashtags found in its summary.
// Doc is nil when an id lookup matched nothing.
type FetchedDocument struct {
	Doc  *Document `json:"doc" yaml:"doc"`
	Tags []string  `json:"tags" yaml:"tags"`
	Diff TagDiff   `json:"diff" yaml:"diff"`
}

type MultiFetchRequestBody struct {
	Locations    []Location `json:"locations" validate:"required,dive,oneof=new later shortlist archive feed"`
	Categories   []Category `json:"categories" validate:"required,dive,oneof=article email rss highlight note pdf epub tweet video"`
	Cursor       *string    `json:"cursor"`
	UpdatedAfter string     `json:"updatedAfter,omitempty"`
}

type UpdateTagsRequestBody struct {
	Tags []string `json:"tags" validate:"required,dive,required"`
}
