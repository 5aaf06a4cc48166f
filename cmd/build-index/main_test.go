package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"

	"go-blog-tools/internal/model"
)

func TestRun_WritesSortedIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("posts", 0o755)
	_ = afero.WriteFile(fs, "posts/first.md", []byte("---\npost_title: First\ndate: 2024-01-01\ntags: [a]\n---\nhello\n"), 0o644)
	_ = afero.WriteFile(fs, "posts/second.md", []byte("---\npost_title: Second\ndate: 2024-06-01\n---\nworld\n"), 0o644)

	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"-config="}, fs, &stderr); code != 0 {
		t.Fatalf("exit = %d; stderr=%s", code, stderr.String())
	}
	b, err := afero.ReadFile(fs, "index.json")
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var out []model.IndexEntry
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Slug != "second" || out[1].Slug != "first" {
		t.Fatalf("index = %+v", out)
	}
}

func TestRun_FlagsOverrideAndMissingDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("content", 0o755)
	_ = afero.WriteFile(fs, "content/a.md", []byte("# A\n"), 0o644)

	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"-config=", "-posts", "content", "-out", "out.json"}, fs, &stderr); code != 0 {
		t.Fatalf("exit = %d; stderr=%s", code, stderr.String())
	}
	if ok, _ := afero.Exists(fs, "out.json"); !ok {
		t.Fatalf("out.json not written")
	}
	if code := run(context.Background(), []string{"-config=", "-posts", "missing"}, fs, &stderr); code != 1 {
		t.Fatalf("exit = %d want 1", code)
	}
}
