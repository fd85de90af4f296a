package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"readtag/internal/models"
	"readtag/internal/readwise"
	"readtag/internal/utils"
	"readtag/internal/validation"
)

// ErrInvalidFilter is returned for a location or category the list endpoint does not know.
var ErrInvalidFilter = errors.New("invalid document filter")

type DocumentRepository interface {
	FindByID(ctx context.Context, token, id string, opts models.ListOptions) (*models.Document, error)
	FindAll(ctx context.Context, token string, opts models.ListOptions) ([]models.Document, error)
	FindByLocationsAndCategories(ctx context.Context, token string, locations []models.Location, categories []models.Category, base models.ListOptions) ([]models.Document, error)
	Update(ctx context.Context, token, id string, payload models.DocumentUpdate) (*models.UpdatedDocument, error)
}

type documentRepository struct {
	client    *readwise.Client
	validator *validation.Validator
}

func NewDocumentRepository(client *readwise.Client, validator *validation.Validator) DocumentRepository {
	return &documentRepository{client: client, validator: validator}
}

// observe starts a timer for one repository operation; call the returned
// function with the operation's error when it finishes.
func observe(operation string) func(err error) {
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.OperationDurationSeconds.WithLabelValues(operation, "document", status).Observe(v)
	}))
	return func(err error) {
		if err != nil {
			status = "error"
			utils.OperationErrorsTotal.WithLabelValues(operation, "document").Inc()
		}
		timer.ObserveDuration()
	}
}

// FindByID issues exactly one list call scoped to id and returns its first
// result, or nil when nothing matched. The response cursor is ignored.
func (r *documentRepository) FindByID(ctx context.Context, token, id string, opts models.ListOptions) (doc *models.Document, err error) {
	done := observe("find_by_id")
	defer func() { done(err) }()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, readwise.NewError("list", "", readwise.ErrMissingID)
	}

	opts.ID = id
	opts.PageCursor = ""
	page, err := r.listPage(ctx, token, opts)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		log.Debug().Str("document_id", id).Msg("No document matched id")
		return nil, nil
	}
	return &page.Results[0], nil
}

// FindAll follows nextPageCursor from opts.PageCursor until the endpoint
// returns no cursor. A lookup by id never paginates.
func (r *documentRepository) FindAll(ctx context.Context, token string, opts models.ListOptions) (docs []models.Document, err error) {
	done := observe("find_all")
	defer func() { done(err) }()

	return r.findAll(ctx, token, opts)
}

func (r *documentRepository) findAll(ctx context.Context, token string, opts models.ListOptions) ([]models.Document, error) {
	all := []models.Document{}
	for {
		page, err := r.listPage(ctx, token, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)

		if opts.ID != "" || page.NextPageCursor == nil || *page.NextPageCursor == "" {
			return all, nil
		}
		opts.PageCursor = *page.NextPageCursor
	}
}

// FindByLocationsAndCategories fetches every page for each (location, category)
// pair, locations outermost, in input order. Duplicates are not collapsed.
//
// base supplies the remaining filters; its Location, Category and ID are
// ignored. base.PageCursor, when set, is the starting cursor of every pair, not
// only the first one. Readwise cursors belong to a single filter, so callers
// that pass one should pass a single location and category.
func (r *documentRepository) FindByLocationsAndCategories(ctx context.Context, token string, locations []models.Location, categories []models.Category, base models.ListOptions) (docs []models.Document, err error) {
	done := observe("find_by_locations_and_categories")
	defer func() { done(err) }()

	for _, loc := range locations {
		if !loc.Valid() {
			return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidFilter, loc)
		}
	}
	for _, cat := range categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, cat)
		}
	}

	base.ID = ""
	all := []models.Document{}
	for _, loc := range locations {
		for _, cat := range categories {
			opts := base
			opts.Location = loc
			opts.Category = cat
			found, err := r.findAll(ctx, token, opts)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("location", string(loc)).Str("category", string(cat)).Int("count", len(found)).Msg("Fetched documents for filter")
			all = append(all, found...)
		}
	}
	return all, nil
}

// Update replaces the tags of document id. An empty id fails before any call is made.
func (r *documentRepository) Update(ctx context.Context, token, id string, payload models.DocumentUpdate) (updated *models.UpdatedDocument, err error) {
	done := observe("update")
	defer func() { done(err) }()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, readwise.NewError("update", "", readwise.ErrMissingID)
	}

	raw, err := r.client.Do(ctx, http.MethodPatch, r.client.UpdateURL(id), payload, token)
	if err != nil {
		return nil, readwise.NewError("update", id, err)
	}

	var resp models.UpdatedDocument
	if err := r.decode(raw, &resp); err != nil {
		return nil, readwise.NewError("update", id, err)
	}
	return &resp, nil
}

func (r *documentRepository) listPage(ctx context.Context, token string, opts models.ListOptions) (*models.DocumentList, error) {
	raw, err := r.client.Do(ctx, http.MethodGet, r.client.ListURL(listQuery(opts)), nil, token)
	if err != nil {
		return nil, readwise.NewError("list", opts.ID, err)
	}

	var page models.DocumentList
	if err := r.decode(raw, &page); err != nil {
		return nil, readwise.NewError("list", opts.ID, err)
	}

	log.Debug().Int("count", *page.Count).Int("results", len(page.Results)).Bool("has_next", page.NextPageCursor != nil).Msg("Received document list page")
	return &page, nil
}

// decode parses raw into dst and checks it against dst's validate tags.
func (r *documentRepository) decode(raw []byte, dst any) error {
	if raw == nil {
		return fmt.Errorf("%w: empty response body", readwise.ErrInvalidResponse)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", readwise.ErrInvalidResponse, err)
	}
	if err := r.validator.Validate(dst); err != nil {
		return fmt.Errorf("%w: %w", readwise.ErrInvalidResponse, err)
	}
	return nil
}

func listQuery(opts models.ListOptions) url.Values {
	q := url.Values{}
	if opts.PageCursor != "" {
		q.Set("pageCursor", opts.PageCursor)
	}
	if opts.ID != "" {
		q.Set("id", opts.ID)
	}
	if opts.UpdatedAfter != "" {
		q.Set("updatedAfter", opts.UpdatedAfter)
	}
	if opts.Location != "" {
		q.Set("location", string(opts.Location))
	}
	if opts.Category != "" {
		q.Set("category", string(opts.Category))
	}
	for _, tag := range opts.Tags {
		q.Add("tag", tag)
	}
	if opts.WithHTMLContent != nil {
		q.Set("withHtmlContent", strconv.FormatBool(*opts.WithHTMLContent))
	}
	if opts.WithRawSourceURL != nil {
		q.Set("withRawSourceUrl", strconv.FormatBool(*opts.WithRawSourceURL))
	}
	return q
}
