package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"readtag/internal/models"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v in the requested format; text output is delegated to text.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case outputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return text(w)
	}
}

func writeFetched(w io.Writer, f models.FetchedDocument) error {
	if f.Doc == nil {
		_, err := fmt.Fprintln(w, "no document found")
		return err
	}

	title := ""
	if f.Doc.Title != nil {
		title = *f.Doc.Title
	}
	status := "no hashtags"
	switch {
	case f.Diff.Aligned:
		status = "aligned"
	case len(f.Diff.Suggested) > 0:
		status = fmt.Sprintf("Δ %d tags", len(f.Diff.Suggested))
	}

	_, err := fmt.Fprintf(w, "%s  %s [%s/%s]\n  stored:    %s\n  extracted: %s\n  suggested: %s\n  status:    %s\n",
		f.Doc.ID, title, f.Doc.Location, f.Doc.Category,
		joinTags(f.Diff.Existing), joinTags(f.Diff.Extracted), joinTags(f.Diff.Suggested), status)
	return err
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
