package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"go-blog-tools/internal/export"
	"go-blog-tools/internal/meta"
	"go-blog-tools/internal/model"
)

func TestWriteIndex_PrettyArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	entries := []model.IndexEntry{
		{Slug: "a", PostTitle: "A <b>", Date: meta.Of("2024-06-01"), Tags: []string{"go"}, ReadTimeHuman: "0 seconds"},
		{Slug: "b", Tags: []string{}},
	}
	if err := export.WriteIndex(fs, "index.json", entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := afero.ReadFile(fs, "index.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(b)
	if !strings.HasPrefix(out, "[\n  {\n    \"slug\": \"a\"") {
		t.Fatalf("unexpected layout:\n%s", out)
	}
	if !strings.Contains(out, `"post_title": "A <b>"`) {
		t.Fatalf("html should not be escaped:\n%s", out)
	}
	if !strings.Contains(out, `"date": null`) || !strings.Contains(out, `"tags": []`) {
		t.Fatalf("defaults missing:\n%s", out)
	}
	var back []model.IndexEntry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back) != 2 || back[0].Date.Text() != "2024-06-01" {
		t.Fatalf("decoded = %+v", back)
	}
}

func TestWriteIndex_EmptyAndOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "index.json", []byte(strings.Repeat("x", 1024)), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := export.WriteIndex(fs, "index.json", nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := afero.ReadFile(fs, "index.json")
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("content = %q", b)
	}
}

func TestWriteIndex_UnquotedYAMLDate(t *testing.T) {
	doc, err := meta.Parse("p.md", "---\ndate: 2024-06-01\n---\nbody\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fs := afero.NewMemMapFs()
	entries := []model.IndexEntry{{Slug: "p", Date: doc.Data.Get("date"), Tags: []string{}}}
	if err := export.WriteIndex(fs, "index.json", entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := afero.ReadFile(fs, "index.json")
	if !strings.Contains(string(b), `"date": "2024-06-01T00:00:00.000Z"`) {
		t.Fatalf("date not rendered as ISO timestamp:\n%s", b)
	}
}
