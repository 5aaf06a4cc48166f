// 命令行入口：扫描文章目录并生成 index.json。
// - 无参数时使用 posts/ 与 index.json（可由 blogtools.yaml 或 BLOG_* 环境变量覆盖）
// - 单篇文章解析失败默认告警跳过，INDEX.strict 为 true 时中止
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"go-blog-tools/internal/config"
	"go-blog-tools/internal/export"
	"go-blog-tools/internal/indexer"
	"go-blog-tools/internal/logx"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], afero.NewOsFs(), os.Stderr))
}

func run(ctx context.Context, args []string, appFs afero.Fs, stderr io.Writer) int {
	fset := flag.NewFlagSet("build-index", flag.ContinueOnError)
	fset.SetOutput(stderr)
	var (
		configPath = fset.String("config", config.DefaultPath, "path to blogtools.yaml (optional)")
		postsDir   = fset.String("posts", "", "posts directory (overrides INDEX.posts_dir)")
		outPath    = fset.String("out", "", "output file (overrides INDEX.output)")
	)
	if err := fset.Parse(args); err != nil {
		return 2
	}

	// 1) 加载配置，命令行参数优先
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if *postsDir != "" {
		cfg.Index.PostsDir = *postsDir
	}
	if *outPath != "" {
		cfg.Index.Output = *outPath
	}
	logx.Init(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	// 2) 构建并整文件覆盖写出
	entries, err := indexer.New(appFs, cfg.Index).Build(ctx)
	if err != nil {
		logx.Errorf("build index: %v", err)
		return 1
	}
	if err := export.WriteIndex(appFs, cfg.Index.Output, entries); err != nil {
		logx.Errorf("write index: %v", err)
		return 1
	}
	logx.Infof("wrote %d entries to %s", len(entries), cfg.Index.Output)
	return 0
}
