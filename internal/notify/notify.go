// 包 notify 负责新文章的 Discord webhook 通知：
// - 校验位置参数（文件路径、webhook 地址必填）
// - 读取文章并提取标题/摘要，拼装 embed 载荷
// - 单次 POST 投递，非 2xx 或传输失败均视为失败，不重试
package notify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"

	"go-blog-tools/internal/config"
	"go-blog-tools/internal/extract"
	"go-blog-tools/internal/fetch"
	"go-blog-tools/internal/logx"
	"go-blog-tools/internal/model"
)

var (
	// ErrUsage 表示缺少必填参数（退出码 2）。
	ErrUsage = errors.New("usage")
	// ErrFileNotFound 表示文章文件不存在（退出码 1）。
	ErrFileNotFound = errors.New("file not found")
	// ErrDelivery 表示 webhook 返回非 2xx 或请求未能送达（退出码 1）。
	ErrDelivery = errors.New("delivery failed")
)

// Args 为命令行位置参数：filePath webhookUrl repo [branch] [sha]。
type Args struct {
	FilePath   string `json:"file_path"`
	WebhookURL string `json:"webhook_url"`
	Repo       string `json:"repo"`
	Branch     string `json:"branch"`
	// SHA 仅接收，不参与载荷
	SHA string `json:"sha"`
}

// ParseArgs 按位置映射参数，缺失的位置保持空串。
func ParseArgs(args []string) Args {
	at := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}
	return Args{
		FilePath:   at(0),
		WebhookURL: at(1),
		Repo:       at(2),
		Branch:     at(3),
		SHA:        at(4),
	}
}

// Validate 检查必填参数，失败时错误包裹 ErrUsage。
func (a Args) Validate() error {
	err := validation.ValidateStruct(&a,
		validation.Field(&a.FilePath, validation.Required),
		validation.Field(&a.WebhookURL, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// Sender 发送 JSON 请求，*fetch.Client 满足该接口。
type Sender interface {
	PostJSON(ctx context.Context, target string, v any) (*fetch.Response, error)
}

// History 记录投递结果，*store.SQLite 满足该接口。
type History interface {
	RecordDelivery(ctx context.Context, d model.Delivery) error
}

// Notifier 组合文件系统、发送器与可选历史记录。
type Notifier struct {
	fs      afero.Fs
	sender  Sender
	cfg     config.Notify
	history History
	now     func() time.Time
}

// New 创建 Notifier；history 可为 nil。
func New(fs afero.Fs, sender Sender, cfg config.Notify, history History) *Notifier {
	return &Notifier{fs: fs, sender: sender, cfg: cfg, history: history, now: time.Now}
}

// Run 执行一次通知：校验 → 读文件 → 提取 → 拼载荷 → 投递 → 记录。
func (n *Notifier) Run(ctx context.Context, a Args) error {
	if err := a.Validate(); err != nil {
		return err
	}
	raw, err := afero.ReadFile(n.fs, a.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, a.FilePath)
		}
		return fmt.Errorf("read %s: %w", a.FilePath, err)
	}
	rec := extract.FromText(filepath.Base(a.FilePath), string(raw))
	payload := n.Payload(rec, a)

	d := model.Delivery{FilePath: a.FilePath, Title: rec.Title, WebhookHost: hostOf(a.WebhookURL), SentAt: n.now()}
	err = n.deliver(ctx, a.WebhookURL, payload, &d)
	n.record(ctx, d)
	if err != nil {
		return err
	}
	logx.Infof("notified %q (%s)", rec.Title, payload.Embeds[0].URL)
	return nil
}

// deliver 发送一次请求并把结果写入 d。
func (n *Notifier) deliver(ctx context.Context, target string, p model.Payload, d *model.Delivery) error {
	resp, err := n.sender.PostJSON(ctx, target, p)
	if err != nil {
		d.Error = err.Error()
		logx.Errorf("webhook request failed: %v", err)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	d.StatusCode = resp.StatusCode
	if !resp.OK() {
		d.Error = fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusText)
		logx.Errorf("webhook responded %d %s: %s", resp.StatusCode, resp.StatusText, string(resp.Body))
		return fmt.Errorf("%w: status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}

func (n *Notifier) record(ctx context.Context, d model.Delivery) {
	if n.history == nil {
		return
	}
	if err := n.history.RecordDelivery(ctx, d); err != nil {
		logx.Warnf("record delivery failed: %v", err)
	}
}

// Payload 拼装 webhook 请求体；摘要为空时使用占位文案。
func (n *Notifier) Payload(rec model.Record, a Args) model.Payload {
	branch := a.Branch
	if branch == "" {
		branch = n.defaultBranch()
	}
	desc := rec.Summary
	if desc == "" {
		desc = n.cfg.EmptySummary
	}
	return model.Payload{
		Username: n.cfg.Username,
		Embeds: []model.Embed{{
			Title:       rec.Title,
			Description: desc,
			URL:         BrowseURL(n.cfg.BrowseBase, a.Repo, branch, a.FilePath),
			Timestamp:   n.now().UTC().Format(time.RFC3339),
			Footer:      model.Footer{Text: "Repository: " + a.Repo},
		}},
	}
}

func (n *Notifier) defaultBranch() string {
	if n.cfg.DefaultBranch != "" {
		return n.cfg.DefaultBranch
	}
	return "main"
}

// BrowseURL 返回仓库中文件的浏览地址：<base>/<repo>/blob/<branch>/<filePath>。
func BrowseURL(base, repo, branch, filePath string) string {
	if base == "" {
		base = "https://github.com"
	}
	if branch == "" {
		branch = "main"
	}
	return strings.TrimRight(base, "/") + "/" + repo + "/blob/" + branch + "/" + filePath
}

// ExitCode 将错误映射为进程退出码：参数错误 2，其余失败 1。
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

// hostOf 仅保留 webhook 的主机名，避免把令牌写入历史库。
func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return ""
}
