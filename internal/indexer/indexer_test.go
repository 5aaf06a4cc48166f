package indexer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"go-blog-tools/internal/config"
	"go-blog-tools/internal/indexer"
	"go-blog-tools/internal/meta"
	"go-blog-tools/internal/model"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("posts", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, "posts/"+name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func cfg() config.Index {
	return config.Default().Index
}

func TestBuild_SortsNewestFirst(t *testing.T) {
	fs := newFs(t, map[string]string{
		"old.md": "---\npost_title: Old\ndate: 2024-01-01\n---\nbody\n",
		"new.md": "---\npost_title: New\ndate: 2024-06-01\n---\nbody\n",
	})
	entries, err := indexer.New(fs, cfg()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Slug != "new" || entries[1].Slug != "old" {
		t.Fatalf("order = %s, %s", entries[0].Slug, entries[1].Slug)
	}
	if entries[0].PostTitle != "New" || entries[0].Date.Text() != "2024-06-01T00:00:00.000Z" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestBuild_FieldsAndDefaults(t *testing.T) {
	fs := newFs(t, map[string]string{
		"full.md":   "---\npost_title: Full\ndate: 2024-03-03\ntags: [go, cli]\nsummary: one two three\n---\n# Heading\n\nfour five\n",
		"bare.md":   "# Only Heading\n\nSome words here.\n",
		"notes.txt": "ignored",
	})
	if err := fs.MkdirAll("posts/drafts.md", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	entries, err := indexer.New(fs, cfg()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d (%+v)", len(entries), entries)
	}
	full, bare := entries[0], entries[1]
	if full.Slug != "full" || bare.Slug != "bare" {
		t.Fatalf("order = %s, %s", full.Slug, bare.Slug)
	}
	if strings.Join(full.Tags, ",") != "go,cli" || full.Summary != "one two three" {
		t.Fatalf("full = %+v", full)
	}
	// summary(3) + "# Heading four five"(4) = 7 词 → 2.1 秒 → 2
	if full.ReadTimeSeconds != 2 || full.ReadTimeHuman != "2 seconds" {
		t.Fatalf("read time = %d %q", full.ReadTimeSeconds, full.ReadTimeHuman)
	}
	// post_title 只取声明值，不回退到标题/文件名
	if bare.PostTitle != "" || !bare.Date.IsAbsent() || bare.Summary != "" {
		t.Fatalf("bare = %+v", bare)
	}
	if bare.Tags == nil || len(bare.Tags) != 0 {
		t.Fatalf("bare tags = %#v", bare.Tags)
	}
}

func TestBuild_PostTitleIgnoresTitleKey(t *testing.T) {
	fs := newFs(t, map[string]string{"a.md": "---\ntitle: Declared\n---\n"})
	entries, err := indexer.New(fs, cfg()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entries[0].PostTitle != "" {
		t.Fatalf("post_title = %q", entries[0].PostTitle)
	}
}

func TestBuild_EmptyTagsIsEmptyList(t *testing.T) {
	fs := newFs(t, map[string]string{"a.md": "---\ntags: \"\"\n---\nbody\n"})
	entries, err := indexer.New(fs, cfg()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entries[0].Tags == nil || len(entries[0].Tags) != 0 {
		t.Fatalf("tags = %#v", entries[0].Tags)
	}
}

func TestBuild_BodyReadLimit(t *testing.T) {
	body := strings.Repeat("word ", 1000) + "\n"
	fs := newFs(t, map[string]string{"long.md": body})
	c := cfg()
	c.BodyReadLimit = 50 // 10 个词
	entries, err := indexer.New(fs, c).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entries[0].ReadTimeSeconds != 3 {
		t.Fatalf("seconds = %d want 3", entries[0].ReadTimeSeconds)
	}
}

func TestBuild_MalformedSkippedOrStrict(t *testing.T) {
	files := map[string]string{
		"good.md": "---\ndate: 2024-01-01\n---\nok\n",
		"bad.md":  "---\ntitle: [broken\n---\nbody\n",
	}
	entries, err := indexer.New(newFs(t, files), cfg()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "good" {
		t.Fatalf("entries = %+v", entries)
	}

	c := cfg()
	c.Strict = true
	if _, err := indexer.New(newFs(t, files), c).Build(context.Background()); err == nil {
		t.Fatalf("strict build should fail")
	}
}

func TestBuild_MissingDir(t *testing.T) {
	c := cfg()
	c.PostsDir = "nope"
	if _, err := indexer.New(afero.NewMemMapFs(), c).Build(context.Background()); err == nil {
		t.Fatalf("expect error for missing dir")
	}
}

func TestSort_InvalidDatesLastAndStable(t *testing.T) {
	entries := []model.IndexEntry{
		{Slug: "none-1"},
		{Slug: "jan", Date: meta.Of("2024-01-01")},
		{Slug: "junk", Date: meta.Of("someday")},
		{Slug: "jun", Date: meta.Of("2024-06-01")},
		{Slug: "none-2"},
		{Slug: "jan-2", Date: meta.Of("2024-01-01")},
	}
	indexer.Sort(entries)
	var got []string
	for _, e := range entries {
		got = append(got, e.Slug)
	}
	want := "jun,jan,jan-2,none-1,junk,none-2"
	if strings.Join(got, ",") != want {
		t.Fatalf("order = %v want %s", got, want)
	}
}
