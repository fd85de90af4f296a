package models

// TagType records how a tag ended up on a document.
type TagType string

const (
	TagTypeManual    TagType = "manual"
	TagTypeGenerated TagType = "generated"
	TagTypePublicAPI TagType = "public_api"
)

// TagEntry is the metadata stored next to each key of a document's tag map.
type TagEntry struct {
	Name    string  `json:"name" yaml:"name"`
	Type    TagType `json:"type" yaml:"type" validate:"required,oneof=manual generated public_api"`
	Created int64   `json:"created" yaml:"created"` // unix milliseconds
}

// UpdateMode selects how extracted tags are merged into a document before it is written back.
type UpdateMode string

const (
	UpdateModeOverwrite UpdateMode = "overwrite"
	UpdateModeCombine   UpdateMode = "combine"
	UpdateModePick      UpdateMode = "pick"
)

// TagDiff compares the tags stored on a document with the tags extracted from its summary.
type TagDiff struct {
	Existing  []string `json:"existing" yaml:"existing"`
	Extracted []string `json:"extracted" yaml:"extracted"`
	Suggested []string `json:"suggested" yaml:"suggested"`
	Overlap   []string `json:"overlap" yaml:"overlap"`
	Aligned   bool     `json:"aligned" yaml:"aligned"`
}
