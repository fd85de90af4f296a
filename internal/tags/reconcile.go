package tags

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"readtag/internal/models"
)

// Sort returns a copy of tags in locale-aware order. A Collator is not safe for
// concurrent use, so each call builds its own.
func Sort(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	collate.New(language.Und).SortStrings(out)
	return out
}

// Stored returns the sorted tag names of doc. A nil doc has no tags.
func Stored(doc *models.Document) []string {
	if doc == nil {
		return []string{}
	}
	names := make([]string, 0, len(doc.Tags))
	for name := range doc.Tags {
		names = append(names, name)
	}
	return Sort(names)
}

// Compare reports which extracted tags are new and which the document already has.
// A document is aligned when something was extracted and nothing new was.
func Compare(stored, extracted []string) models.TagDiff {
	existing := toSet(stored)

	diff := models.TagDiff{
		Existing:  Sort(stored),
		Extracted: Sort(extracted),
		Suggested: []string{},
		Overlap:   []string{},
	}
	for _, t := range diff.Extracted {
		if _, ok := existing[t]; ok {
			diff.Overlap = append(diff.Overlap, t)
		} else {
			diff.Suggested = append(diff.Suggested, t)
		}
	}
	diff.Aligned = len(diff.Extracted) > 0 && len(diff.Suggested) == 0
	return diff
}

// Resolve computes the tag list to write back for the given mode:
// overwrite keeps only the extracted tags, combine merges them with the stored
// ones, and pick uses exactly the picked tags.
func Resolve(mode models.UpdateMode, stored, extracted, picked []string) ([]string, error) {
	switch mode {
	case models.UpdateModeOverwrite:
		return union(extracted), nil
	case models.UpdateModeCombine:
		return union(stored, extracted), nil
	case models.UpdateModePick:
		return union(picked), nil
	default:
		return nil, fmt.Errorf("unknown tag update mode %q", mode)
	}
}

// Selection is the set of tags a user intends to keep on one document.
// It starts as stored ∪ extracted.
type Selection struct {
	Stored    []string
	Extracted []string
	selected  map[string]struct{}
}

func NewSelection(stored, extracted []string) *Selection {
	s := &Selection{
		Stored:    Sort(stored),
		Extracted: Sort(extracted),
		selected:  make(map[string]struct{}, len(stored)+len(extracted)),
	}
	for _, t := range stored {
		s.selected[t] = struct{}{}
	}
	for _, t := range extracted {
		s.selected[t] = struct{}{}
	}
	return s
}

func (s *Selection) Select(tag string) {
	if tag != "" {
		s.selected[tag] = struct{}{}
	}
}

func (s *Selection) Deselect(tag string) {
	delete(s.selected, tag)
}

func (s *Selection) IsSelected(tag string) bool {
	_, ok := s.selected[tag]
	return ok
}

// Selected returns the selected tags in display order.
func (s *Selection) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for t := range s.selected {
		out = append(out, t)
	}
	return Sort(out)
}

func union(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, t := range list {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, t := range list {
		set[t] = struct{}{}
	}
	return set
}
