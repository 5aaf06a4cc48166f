// 包 meta 负责解析文章顶部的 front matter（YAML）：
// - 使用 adrg/frontmatter 切分元数据块与正文，YAML 由 yaml.v3 解码
// - 元数据以带类型标签的 Value 表示，按字段显式取默认值
package meta

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Metadata 为已声明的元数据，键区分大小写。
type Metadata map[string]Value

// Get 返回键对应的取值，不存在时为 Absent（nil 安全）。
func (m Metadata) Get(key string) Value {
	if m == nil {
		return Value{}
	}
	return m[key]
}

// Document 为一篇已读取的文章：文件名、元数据与正文（元数据块之后的剩余部分）。
type Document struct {
	Name string
	Data Metadata
	Body string
}

var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
}

// Parse 解析 raw 顶部的元数据块。
// 无元数据块时 Data 为空、Body 为原文；元数据块损坏时同样回退为空 Data + 原文，
// 并额外返回错误，由调用方决定忽略还是上报。
// 元数据块必须从第 0 个字节开始，前导空行或空白之后的 "---" 视为正文。
func Parse(name, raw string) (Document, error) {
	if !strings.HasPrefix(raw, "---") {
		return Document{Name: name, Data: Metadata{}, Body: raw}, nil
	}
	var data map[string]any
	body, err := frontmatter.Parse(strings.NewReader(raw), &data, formats...)
	if err != nil {
		return Document{Name: name, Data: Metadata{}, Body: raw}, fmt.Errorf("parse front matter %s: %w", name, err)
	}
	md := make(Metadata, len(data))
	for k, v := range data {
		md[k] = Of(v)
	}
	return Document{Name: name, Data: md, Body: string(body)}, nil
}
