// 包 extract 从文章中解析标题与摘要：
// - 标题：title → 首个一级标题（"# X"）→ 文件名
// - 摘要：description → excerpt → 首段正文 → 空串，随后归一化并截断到 300 字符
package extract

import (
	"regexp"
	"strings"

	"go-blog-tools/internal/meta"
	"go-blog-tools/internal/model"
)

// MaxSummary 为摘要的最大字符数（按 rune 计），超出时保留 MaxSummary-3 个字符并追加省略号。
const MaxSummary = 300

const ellipsis = "..."

var (
	headingRe   = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t]*\r?$`)
	blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)
	imageOnlyRe = regexp.MustCompile(`^!\[[^\]]*\]\([^)]*\)$`)
	spaceRe     = regexp.MustCompile(`\s+`)
	newlineRe   = regexp.MustCompile(`\r?\n+`)
)

// FromText 解析 raw 并提取记录；元数据块损坏时按无元数据处理，不返回错误。
func FromText(name, raw string) model.Record {
	doc, _ := meta.Parse(name, raw)
	return Extract(doc)
}

// Extract 依回退链解析标题与摘要。
func Extract(doc meta.Document) model.Record {
	return model.Record{
		Title:   Title(doc),
		Summary: Summary(doc),
	}
}

// Title 返回第一个有效候选：声明的 title（按 Truthy 判定，原样返回）、正文首个 "# " 标题、文件名。
func Title(doc meta.Document) string {
	if t := doc.Data.Get("title"); t.Truthy() {
		return t.Text()
	}
	if h := FirstHeading(doc.Body); h != "" {
		return h
	}
	return doc.Name
}

// Summary 返回归一化并截断后的摘要。
func Summary(doc meta.Document) string {
	var s string
	switch {
	case doc.Data.Get("description").Truthy():
		s = doc.Data.Get("description").Text()
	case doc.Data.Get("excerpt").Truthy():
		s = doc.Data.Get("excerpt").Text()
	default:
		s = FirstParagraph(doc.Body)
	}
	// 连续换行（含空行）只折叠为一个空格
	s = newlineRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return Truncate(s, MaxSummary)
}

// FirstHeading 返回首个一级标题（"#" 后跟空白再跟文本）的文本，"##" 等更深层标题不匹配。
func FirstHeading(body string) string {
	for _, m := range headingRe.FindAllStringSubmatch(body, -1) {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}
	return ""
}

// FirstParagraph 返回首个以空行分隔、非空、非标题、且不只是单张图片的段落，
// 段内空白（含换行）折叠为单个空格。
func FirstParagraph(body string) string {
	for _, block := range blankLineRe.Split(body, -1) {
		b := strings.TrimSpace(block)
		if b == "" || strings.HasPrefix(b, "#") || imageOnlyRe.MatchString(b) {
			continue
		}
		return spaceRe.ReplaceAllString(b, " ")
	}
	return ""
}

// Truncate 按字符截断：长度超过 limit 时保留 limit-3 个字符并追加 "..."。
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + ellipsis
}
