// 命令行入口：为新发布的文章发送 Discord webhook 通知。
//
//	notify-discord [-config FILE] <filePath> <webhookUrl> <repo> [branch] [sha]
//
// 退出码：0 成功；2 缺少必填参数；1 文件不存在或投递失败。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"go-blog-tools/internal/config"
	"go-blog-tools/internal/fetch"
	"go-blog-tools/internal/logx"
	"go-blog-tools/internal/notify"
	"go-blog-tools/internal/store"
)

const usage = "usage: notify-discord [-config FILE] <filePath> <webhookUrl> <repo> [branch] [sha]"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], afero.NewOsFs(), os.Stderr))
}

func run(ctx context.Context, args []string, appFs afero.Fs, stderr io.Writer) int {
	fset := flag.NewFlagSet("notify-discord", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configPath := fset.String("config", config.DefaultPath, "path to blogtools.yaml (optional)")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	// 1) 参数校验先于任何文件/网络访问
	a := notify.ParseArgs(fset.Args())
	if err := a.Validate(); err != nil {
		fmt.Fprintln(stderr, usage)
		fmt.Fprintln(stderr, err)
		return notify.ExitCode(err)
	}

	// 2) 配置与日志
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	logx.Init(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	// 3) HTTP 客户端（默认无超时、不重试）
	cl, err := fetch.New(fetch.Options{
		ProxyHTTP:  cfg.HTTP.ProxyHTTP,
		ProxyHTTPS: cfg.HTTP.ProxyHTTPS,
		Timeout:    cfg.HTTP.Timeout,
	})
	if err != nil {
		logx.Errorf("http client: %v", err)
		return 1
	}

	// 4) 可选投递历史
	var history notify.History
	if cfg.History.DSN != "" {
		st, err := store.OpenSQLite(cfg.History.DSN)
		if err != nil {
			logx.Warnf("open history %s: %v", cfg.History.DSN, err)
		} else {
			defer st.Close()
			history = st
		}
	}

	n := notify.New(appFs, cl, cfg.Notify, history)
	if err := n.Run(ctx, a); err != nil {
		logx.Errorf("notify: %v", err)
		return notify.ExitCode(err)
	}
	return 0
}
