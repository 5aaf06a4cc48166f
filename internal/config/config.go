// 包 config 负责加载与校验工具配置（blogtools.yaml，可选）：
// - 文件由 yaml.v3 解析，环境变量（BLOG_*）覆盖文件取值
// - Validate 负责填充默认值与范围校验
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"go-blog-tools/internal/readtime"
)

// DefaultPath 为默认配置文件路径；文件不存在时使用内置默认值。
const DefaultPath = "blogtools.yaml"

// webhook 载荷的默认署名与空摘要占位文案，可由 NOTIFY 段或环境变量覆盖。
const (
	DefaultUsername     = "Blog Notifier"
	DefaultEmptySummary = "A new blog post was published — check it out!"
)

type Config struct {
	Index     Index   `yaml:"INDEX"`
	Notify    Notify  `yaml:"NOTIFY"`
	HTTP      HTTP    `yaml:"HTTP"`
	History   History `yaml:"HISTORY"`
	LogLevel  string  `yaml:"LOG_LEVEL" env:"BLOG_LOG_LEVEL"`
	LogFormat string  `yaml:"LOG_FORMAT" env:"BLOG_LOG_FORMAT"` // text|json|pretty
	LogLocale string  `yaml:"LOG_LOCALE" env:"BLOG_LOG_LOCALE"` // en|zh-CN
	LogColor  string  `yaml:"LOG_COLOR" env:"BLOG_LOG_COLOR"`   // auto|always|never
}

// Index 为索引构建参数。
type Index struct {
	PostsDir       string `yaml:"posts_dir" env:"BLOG_POSTS_DIR"`
	Output         string `yaml:"output" env:"BLOG_INDEX_OUTPUT"`
	BodyReadLimit  int    `yaml:"body_read_limit" env:"BLOG_BODY_READ_LIMIT"`
	WordsPerMinute int    `yaml:"words_per_minute" env:"BLOG_WORDS_PER_MINUTE"`
	// Strict：单篇文章读取/解析失败时中止整次构建，默认跳过并告警
	Strict bool `yaml:"strict" env:"BLOG_INDEX_STRICT"`
}

// Notify 为 webhook 通知参数。
type Notify struct {
	Username      string `yaml:"username" env:"BLOG_WEBHOOK_USERNAME"`
	EmptySummary  string `yaml:"empty_summary" env:"BLOG_EMPTY_SUMMARY"`
	DefaultBranch string `yaml:"default_branch" env:"BLOG_DEFAULT_BRANCH"`
	BrowseBase    string `yaml:"browse_base" env:"BLOG_BROWSE_BASE"`
}

type HTTP struct {
	ProxyHTTP  string        `yaml:"proxy_http" env:"BLOG_PROXY_HTTP"`
	ProxyHTTPS string        `yaml:"proxy_https" env:"BLOG_PROXY_HTTPS"`
	Timeout    time.Duration `yaml:"timeout" env:"BLOG_HTTP_TIMEOUT"` // 0 表示不设超时
}

// History 为投递历史库；DSN 为空时不记录。
type History struct {
	DSN string `yaml:"dsn" env:"BLOG_HISTORY_DSN"`
}

// Default 返回填充默认值后的配置；内置默认值校验失败属于编程错误。
func Default() *Config {
	c := &Config{}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return c
}

// Load 读取 YAML 配置并应用环境变量覆盖。
// path 为空或为默认路径但文件不存在时，直接使用默认值。
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
			// 默认配置文件可缺省
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate 设置默认值并做范围校验，避免在业务层分散判空逻辑。
func (c *Config) Validate() error {
	if c.Index.PostsDir == "" {
		c.Index.PostsDir = "posts"
	}
	if c.Index.Output == "" {
		c.Index.Output = "index.json"
	}
	if c.Index.BodyReadLimit == 0 {
		c.Index.BodyReadLimit = readtime.DefaultBodyLimit
	}
	if c.Index.WordsPerMinute == 0 {
		c.Index.WordsPerMinute = readtime.DefaultWordsPerMinute
	}
	if c.Notify.Username == "" {
		c.Notify.Username = DefaultUsername
	}
	if c.Notify.EmptySummary == "" {
		c.Notify.EmptySummary = DefaultEmptySummary
	}
	if c.Notify.DefaultBranch == "" {
		c.Notify.DefaultBranch = "main"
	}
	if c.Notify.BrowseBase == "" {
		c.Notify.BrowseBase = "https://github.com"
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "en"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	if err := validation.ValidateStruct(&c.Index,
		validation.Field(&c.Index.BodyReadLimit, validation.Min(1)),
		validation.Field(&c.Index.WordsPerMinute, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("INDEX: %w", err)
	}
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("HTTP: %w", err)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In("pretty", "json", "text")),
		validation.Field(&c.LogColor, validation.In("auto", "always", "never")),
	)
}
