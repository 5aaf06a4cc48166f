// 包 model 定义两条流水线共用的数据结构（索引条目/提取结果/通知载荷/投递记录）。
package model

import (
	"time"

	"go-blog-tools/internal/meta"
)

// Record 为从文章中提取的标题与摘要（已回退、已截断）。
type Record struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// IndexEntry 为 index.json 中的一条文章记录。
// Date 保留 front matter 中声明的原始值，缺省时输出 null。
type IndexEntry struct {
	Slug            string     `json:"slug"`
	PostTitle       string     `json:"post_title"`
	Date            meta.Value `json:"date"`
	Tags            []string   `json:"tags"`
	Summary         string     `json:"summary"`
	ReadTimeSeconds int        `json:"read_time_seconds"`
	ReadTimeHuman   string     `json:"read_time_human"`
}

// Payload 为 Discord webhook 请求体。
type Payload struct {
	Username string  `json:"username"`
	Embeds   []Embed `json:"embeds"`
}

type Embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Timestamp   string `json:"timestamp"`
	Footer      Footer `json:"footer"`
}

type Footer struct {
	Text string `json:"text"`
}

// Delivery 为一次通知投递的历史记录（可选落库）。
type Delivery struct {
	FilePath    string    `json:"file_path"`
	Title       string    `json:"title"`
	WebhookHost string    `json:"webhook_host"`
	StatusCode  int       `json:"status_code"`
	Error       string    `json:"error,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}
