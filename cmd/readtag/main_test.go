package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"readtag/internal/models"
	"readtag/internal/services"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Cleanup(func() {
		tokenFlag, outputFlag = "", outputText
		applyMode, applyAdd, applyRemove, applyDryRun = string(models.UpdateModeCombine), nil, nil, false
	})

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case r.URL.Path == "/api/v2/auth/":
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/v3/list/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"count":1,"nextPageCursor":null,"results":[{"id":"doc-1",
				"url":"https://example.com/a","title":"Go notes","category":"article","location":"new",
				"tags":{"reading":{"name":"reading","type":"manual","created":1}},"summary":"#go #cli"}]}`))
		case r.URL.Path == "/api/v3/update/doc-1/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"doc-1","url":"https://read.readwise.io/read/doc-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	t.Setenv("READWISE_BASE_URL", server.URL)
	return server
}

func TestExtractCommand(t *testing.T) {
	out, err := runCLI(t, "", "extract", "read #go and #rate-limit, then #go again")

	require.NoError(t, err)
	assert.Equal(t, "go\nrate-limit\n", out)
}

func TestExtractCommandFromStdin(t *testing.T) {
	out, err := runCLI(t, "#café notes", "extract", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `["café"]`, out)
}

func TestVerifyCommand(t *testing.T) {
	newUpstream(t)

	out, err := runCLI(t, "", "verify", "--token", "tok")
	require.NoError(t, err)
	assert.Equal(t, "token is valid\n", out)

	_, err = runCLI(t, "", "verify", "--token", "nope")
	assert.Error(t, err)
}

func TestVerifyCommandNeedsToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN", "")

	_, err := runCLI(t, "", "verify")

	assert.ErrorIs(t, err, errNoToken)
}

func TestFetchCommandYAML(t *testing.T) {
	newUpstream(t)
	t.Setenv("ACCESS_TOKEN", "tok")

	out, err := runCLI(t, "", "fetch", "doc-1", "-o", "yaml")

	require.NoError(t, err)
	var got struct {
		Doc  map[string]any `yaml:"doc"`
		Tags []string       `yaml:"tags"`
		Diff models.TagDiff `yaml:"diff"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"go", "cli"}, got.Tags)
	assert.Equal(t, []string{"cli", "go"}, got.Diff.Suggested)
	assert.Contains(t, got.Doc, "site_name")
	assert.Contains(t, got.Doc, "reading_progress")
	assert.NotContains(t, got.Doc, "sitename")
	assert.Equal(t, "article", got.Doc["category"])
	entry, ok := got.Doc["tags"].(map[string]any)["reading"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "manual", entry["type"])
}

func TestApplyCommandDryRun(t *testing.T) {
	newUpstream(t)

	out, err := runCLI(t, "", "apply", "doc-1", "--token", "tok", "--mode", "combine", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, "would update doc-1 (combine): cli, go, reading\n", out)
}

func TestApplyCommandPickEditsSelection(t *testing.T) {
	newUpstream(t)

	out, err := runCLI(t, "", "apply", "doc-1", "--token", "tok", "--mode", "pick",
		"--remove", "reading", "--add", "golang", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, "would update doc-1 (pick): cli, go, golang\n", out)
}

func TestApplyCommandEditsNeedPickMode(t *testing.T) {
	newUpstream(t)

	_, err := runCLI(t, "", "apply", "doc-1", "--token", "tok", "--mode", "overwrite", "--add", "golang")

	assert.ErrorIs(t, err, services.ErrInvalidTagEdits)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCLI(t, "", "extract", "#go", "-o", "xml")

	assert.Error(t, err)
}

func TestWriteFetched(t *testing.T) {
	title := "Go notes"
	var buf bytes.Buffer

	err := writeFetched(&buf, models.FetchedDocument{
		Doc:  &models.Document{ID: "doc-1", Title: &title, Location: models.LocationNew, Category: models.CategoryArticle},
		Tags: []string{"go"},
		Diff: models.TagDiff{Existing: []string{}, Extracted: []string{"go"}, Suggested: []string{"go"}},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "doc-1  Go notes [new/article]")
	assert.Contains(t, buf.String(), "stored:    -")
	assert.Contains(t, buf.String(), "Δ 1 tags")
}
