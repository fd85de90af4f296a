package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"readtag/internal/metrics"
	"readtag/internal/models"
	"readtag/internal/repositories"
	"readtag/internal/tags"
)

type DocumentService interface {
	GetDocument(ctx context.Context, token, id string) (*models.FetchedDocument, error)
	MultiFetch(ctx context.Context, token string, req models.MultiFetchRequestBody) ([]models.FetchedDocument, error)
	UpdateTags(ctx context.Context, token, id string, tagNames []string) (*models.UpdatedDocument, error)
	ApplyTags(ctx context.Context, token, id string, mode models.UpdateMode, edits TagEdits, dryRun bool) (*TagPlan, error)
}

// TagEdits adjusts the pick-mode selection, which starts as stored ∪ extracted.
type TagEdits struct {
	Add    []string
	Remove []string
}

// TagPlan describes a tag write for one document: the diff it was computed
// from, the resulting tag list and, unless it was a dry run, the update echo.
type TagPlan struct {
	Document *models.FetchedDocument `json:"document" yaml:"document"`
	Mode     models.UpdateMode       `json:"mode" yaml:"mode"`
	Tags     []string                `json:"tags" yaml:"tags"`
	Updated  *models.UpdatedDocument `json:"updated,omitempty" yaml:"updated,omitempty"`
}

type documentServiceImpl struct {
	docRepo repositories.DocumentRepository
}

func NewDocumentService(docRepo repositories.DocumentRepository) DocumentService {
	return &documentServiceImpl{docRepo: docRepo}
}

func (s *documentServiceImpl) GetDocument(ctx context.Context, token, id string) (*models.FetchedDocument, error) {
	log.Debug().Str("document_id", id).Msg("Attempting to fetch document")
	doc, err := s.docRepo.FindByID(ctx, token, id, models.ListOptions{})
	if err != nil {
		log.Error().Err(err).Str("document_id", id).Msg("Failed to fetch document")
		return nil, err
	}

	fetched := inspect(doc)
	if doc != nil {
		metrics.DocumentsFetchedTotal.WithLabelValues("single").Inc()
	}
	log.Info().Str("document_id", id).Bool("found", doc != nil).Int("hashtags", len(fetched.Tags)).Msg("Document fetched")
	return &fetched, nil
}

func (s *documentServiceImpl) MultiFetch(ctx context.Context, token string, req models.MultiFetchRequestBody) ([]models.FetchedDocument, error) {
	base := models.ListOptions{UpdatedAfter: req.UpdatedAfter}
	if req.Cursor != nil {
		base.PageCursor = *req.Cursor
	}

	docs, err := s.docRepo.FindByLocationsAndCategories(ctx, token, req.Locations, req.Categories, base)
	if err != nil {
		log.Error().Err(err).Interface("locations", req.Locations).Interface("categories", req.Categories).Msg("Failed to fetch documents")
		return nil, err
	}

	results := make([]models.FetchedDocument, 0, len(docs))
	for i := range docs {
		results = append(results, inspect(&docs[i]))
	}
	metrics.DocumentsFetchedTotal.WithLabelValues("batch").Add(float64(len(results)))
	log.Info().Int("count", len(results)).Msg("Documents fetched")
	return results, nil
}

func (s *documentServiceImpl) UpdateTags(ctx context.Context, token, id string, tagNames []string) (*models.UpdatedDocument, error) {
	if tagNames == nil {
		tagNames = []string{}
	}
	log.Debug().Str("document_id", id).Strs("tags", tagNames).Msg("Attempting to update document tags")

	updated, err := s.docRepo.Update(ctx, token, id, models.DocumentUpdate{Tags: tagNames})
	if err != nil {
		metrics.TagUpdatesTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("document_id", id).Msg("Failed to update document tags")
		return nil, err
	}
	metrics.TagUpdatesTotal.WithLabelValues("success").Inc()
	log.Info().Str("document_id", updated.ID).Int("tags", len(tagNames)).Msg("Document tags updated")
	return updated, nil
}

// ApplyTags fetches id, resolves the tag list for mode and writes it back
// unless dryRun is set. edits only apply in pick mode.
func (s *documentServiceImpl) ApplyTags(ctx context.Context, token, id string, mode models.UpdateMode, edits TagEdits, dryRun bool) (*TagPlan, error) {
	fetched, err := s.GetDocument(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if fetched.Doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	var picked []string
	if mode == models.UpdateModePick {
		sel := tags.NewSelection(fetched.Diff.Existing, fetched.Tags)
		for _, t := range edits.Add {
			sel.Select(strings.TrimSpace(t))
		}
		for _, t := range edits.Remove {
			t = strings.TrimSpace(t)
			if !sel.IsSelected(t) {
				log.Warn().Str("document_id", id).Str("tag", t).Msg("Tag to remove is not on the document")
				continue
			}
			sel.Deselect(t)
		}
		picked = sel.Selected()
	} else if len(edits.Add) > 0 || len(edits.Remove) > 0 {
		return nil, fmt.Errorf("%w: tag edits need pick mode, got %q", ErrInvalidTagEdits, mode)
	}

	resolved, err := tags.Resolve(mode, fetched.Diff.Existing, fetched.Tags, picked)
	if err != nil {
		return nil, err
	}

	plan := &TagPlan{Document: fetched, Mode: mode, Tags: tags.Sort(resolved)}
	if dryRun {
		log.Info().Str("document_id", id).Str("mode", string(mode)).Strs("tags", plan.Tags).Msg("Dry run, document not updated")
		return plan, nil
	}

	plan.Updated, err = s.UpdateTags(ctx, token, id, plan.Tags)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// inspect pairs doc with the hashtags found in its summary.
func inspect(doc *models.Document) models.FetchedDocument {
	var extracted []string
	if doc != nil {
		extracted = tags.Extract(doc.Summary)
	} else {
		extracted = []string{}
	}
	metrics.HashtagsExtractedTotal.Add(float64(len(extracted)))

	return models.FetchedDocument{
		Doc:  doc,
		Tags: extracted,
		Diff: tags.Compare(tags.Stored(doc), extracted),
	}
}
