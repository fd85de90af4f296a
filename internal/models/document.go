package models

import "encoding/json"

// Category is the kind of content a Readwise document holds.
type Category string

const (
	CategoryArticle   Category = "article"
	CategoryEmail     Category = "email"
	CategoryRSS       Category = "rss"
	CategoryHighlight Category = "highlight"
	CategoryNote      Category = "note"
	CategoryPDF       Category = "pdf"
	CategoryEPUB      Category = "epub"
	CategoryTweet     Category = "tweet"
	CategoryVideo     Category = "video"
)

// Categories lists every category the list endpoint accepts, in API order.
var Categories = []Category{
	CategoryArticle, CategoryEmail, CategoryRSS, CategoryHighlight, CategoryNote,
	CategoryPDF, CategoryEPUB, CategoryTweet, CategoryVideo,
}

// Location is the reading-queue position of a document.
type Location string

const (
	LocationNew       Location = "new"
	LocationLater     Location = "later"
	LocationShortlist Location = "shortlist"
	LocationArchive   Location = "archive"
	LocationFeed      Location = "feed"
)

var Locations = []Location{
	LocationNew, LocationLater, LocationShortlist, LocationArchive, LocationFeed,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (l Location) Valid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Document mirrors a record returned by the Readwise Reader list endpoint.
// Nullable fields are pointers so a JSON null stays distinguishable from "".
type Document struct {
	ID              string              `json:"id" yaml:"id" validate:"required"`
	URL             string              `json:"url" yaml:"url" validate:"required,url"`
	Title           *string             `json:"title" yaml:"title"`
	Author          *string             `json:"author" yaml:"author"`
	Source          *string             `json:"source" yaml:"source"`
	Category        Category            `json:"category" yaml:"category" validate:"required,oneof=article email rss highlight note pdf epub tweet video"`
	Location        Location            `json:"location" yaml:"location" validate:"required,oneof=new later shortlist archive feed"`
	Tags            map[string]TagEntry `json:"tags" yaml:"tags" validate:"required,dive"`
	SiteName        *string             `json:"site_name" yaml:"site_name"`
	WordCount       *int                `json:"word_count" yaml:"word_count"`
	ReadingTime     *string             `json:"reading_time" yaml:"reading_time"`
	CreatedAt       string              `json:"created_at" yaml:"created_at"`
	UpdatedAt       string              `json:"updated_at" yaml:"updated_at"`
	PublishedDate   any                 `json:"published_date" yaml:"published_date"`
	Summary         *string             `json:"summary" yaml:"summary"`
	ImageURL        *string             `json:"image_url" yaml:"image_url"`
	ParentID        *string             `json:"parent_id" yaml:"parent_id"`
	ReadingProgress *float64            `json:"reading_progress" yaml:"reading_progress"`
	FirstOpenedAt   *string             `json:"first_opened_at" yaml:"first_opened_at"`
	LastOpenedAt    *string             `json:"last_opened_at" yaml:"last_opened_at"`
	SavedAt         *string             `json:"saved_at" yaml:"saved_at"`
	LastMovedAt     *string             `json:"last_moved_at" yaml:"last_moved_at"`
	Content         *string             `json:"content" yaml:"content"`
	SourceURL       *string             `json:"source_url" yaml:"source_url"`
	Notes           *string             `json:"notes" yaml:"notes"`
}

// DocumentList is one page of the list endpoint.
type DocumentList struct {
	Count          *int       `json:"count" yaml:"count" validate:"required"`
	NextPageCursor *string    `json:"nextPageCursor" yaml:"nextPageCursor"`
	Results        []Document `json:"results" yaml:"results" validate:"required,dive"`
}

// UpdatedDocument is the echo returned by the update endpoint.
type UpdatedDocument struct {
	ID  string `json:"id" yaml:"id" validate:"required"`
	URL string `json:"url" yaml:"url" validate:"required,url"`
}

// ListOptions are the query parameters accepted by the list endpoint.
type ListOptions struct {
	ID               string
	UpdatedAfter     string
	Location         Location
	Category         Category
	Tags             []string
	PageCursor       string
	WithHTMLContent  *bool
	WithRawSourceURL *bool
}

// DocumentUpdate is the partial payload sent to the update endpoint.
// Tags replaces the whole tag set: nil leaves it untouched, an empty slice clears it.
type DocumentUpdate struct {
	Tags []string `json:"tags" yaml:"tags"`
}

func (u DocumentUpdate) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if u.Tags != nil {
		body["tags"] = u.Tags
	}
	return json.Marshal(body)
}
