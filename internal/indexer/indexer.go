// 包 indexer 负责构建文章索引：
// - 枚举文章目录下的 .md 文件，逐篇解析 front matter
// - 计算阅读时长，组装 IndexEntry
// - 按日期倒序稳定排序（缺失或无法解析的日期视为最旧）
package indexer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"go-blog-tools/internal/config"
	"go-blog-tools/internal/logx"
	"go-blog-tools/internal/meta"
	"go-blog-tools/internal/model"
	"go-blog-tools/internal/readtime"
)

const postExt = ".md"

// Builder 持有文件系统与索引配置。
type Builder struct {
	fs  afero.Fs
	cfg config.Index
}

// New 创建 Builder；cfg 中的零值由 readtime 默认值兜底。
func New(fs afero.Fs, cfg config.Index) *Builder {
	return &Builder{fs: fs, cfg: cfg}
}

// Build 读取全部文章并返回排好序的索引条目。
// 单篇失败默认告警跳过；cfg.Strict 为 true 时返回错误并中止。
func (b *Builder) Build(ctx context.Context) ([]model.IndexEntry, error) {
	infos, err := afero.ReadDir(b.fs, b.cfg.PostsDir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir %s: %w", b.cfg.PostsDir, err)
	}
	entries := make([]model.IndexEntry, 0, len(infos))
	skipped := 0
	for _, fi := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := fi.Name()
		if fi.IsDir() || !strings.HasSuffix(name, postExt) {
			continue
		}
		e, err := b.entry(name)
		if err != nil {
			if b.cfg.Strict {
				return nil, err
			}
			logx.Warnf("skip post %s: %v", name, err)
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	Sort(entries)
	logx.Infof("indexed %d posts from %s (skipped %d)", len(entries), b.cfg.PostsDir, skipped)
	return entries, nil
}

// entry 解析单篇文章；post_title/date/tags/summary 只取声明值，不走标题回退链。
func (b *Builder) entry(name string) (model.IndexEntry, error) {
	raw, err := afero.ReadFile(b.fs, filepath.Join(b.cfg.PostsDir, name))
	if err != nil {
		return model.IndexEntry{}, fmt.Errorf("read %s: %w", name, err)
	}
	doc, err := meta.Parse(name, string(raw))
	if err != nil {
		return model.IndexEntry{}, err
	}
	data := doc.Data
	summary := data.Get("summary").Or(meta.StringValue("")).Text()
	tags := []string{}
	if t := data.Get("tags"); t.Truthy() {
		tags = t.Strings()
	}
	est := readtime.Of(summary, readtime.Prefix(doc.Body, b.bodyLimit()), b.cfg.WordsPerMinute)
	return model.IndexEntry{
		Slug:            strings.TrimSuffix(name, postExt),
		PostTitle:       data.Get("post_title").Or(meta.StringValue("")).Text(),
		Date:            data.Get("date").Or(meta.Value{}),
		Tags:            tags,
		Summary:         summary,
		ReadTimeSeconds: est.Seconds,
		ReadTimeHuman:   est.Human,
	}, nil
}

func (b *Builder) bodyLimit() int {
	if b.cfg.BodyReadLimit <= 0 {
		return readtime.DefaultBodyLimit
	}
	return b.cfg.BodyReadLimit
}

// Sort 按日期倒序稳定排序；日期缺失或无法解析的条目排在最后（视为最旧）。
func Sort(entries []model.IndexEntry) {
	keys := make([]time.Time, len(entries))
	valid := make([]bool, len(entries))
	for i, e := range entries {
		keys[i], valid[i] = e.Date.Time()
	}
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if valid[a] != valid[b] {
			return valid[a]
		}
		return keys[a].After(keys[b])
	})
	sorted := make([]model.IndexEntry, len(entries))
	for i, k := range idx {
		sorted[i] = entries[k]
	}
	copy(entries, sorted)
}
