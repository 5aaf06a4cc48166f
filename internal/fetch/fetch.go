// 包 fetch 封装 HTTP 客户端（代理/可选超时），用于投递 webhook。
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

// maxBody 为读取响应体的上限，仅用于诊断日志。
const maxBody = 64 << 10

// Client 为单次请求、不重试的 HTTP 客户端。
type Client struct {
	http *http.Client
}

// Options 为客户端构造参数；Timeout <= 0 表示不设整体超时。
type Options struct {
	ProxyHTTP  string
	ProxyHTTPS string
	Timeout    time.Duration
}

// Response 为已读取完毕的响应。
type Response struct {
	StatusCode int
	// StatusText 为状态码对应的原因短语，如 "Internal Server Error"
	StatusText string
	Body       []byte
}

// OK 判断是否为 2xx。
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// New 创建客户端，支持 http/https 代理，其余回落到环境变量代理。
func New(opts Options) (*Client, error) {
	var httpProxy, httpsProxy *url.URL
	if opts.ProxyHTTP != "" {
		u, err := url.Parse(opts.ProxyHTTP)
		if err != nil {
			return nil, fmt.Errorf("parse http proxy: %w", err)
		}
		httpProxy = u
	}
	if opts.ProxyHTTPS != "" {
		u, err := url.Parse(opts.ProxyHTTPS)
		if err != nil {
			return nil, fmt.Errorf("parse https proxy: %w", err)
		}
		httpsProxy = u
	}
	transport := &http.Transport{
		Proxy: func(req *http.Request) (*url.URL, error) {
			if req.URL.Scheme == "https" && httpsProxy != nil {
				return httpsProxy, nil
			}
			if req.URL.Scheme == "http" && httpProxy != nil {
				return httpProxy, nil
			}
			return http.ProxyFromEnvironment(req)
		},
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	cl := &http.Client{Transport: transport}
	if opts.Timeout > 0 {
		cl.Timeout = opts.Timeout
	}
	return &Client{http: cl}, nil
}

// PostJSON 将 v 编码为 JSON 并 POST 到 target，只发一次。
// 非 2xx 不视为 error，由调用方根据 Response.OK 判断；传输层失败返回 error。
func (c *Client) PostJSON(ctx context.Context, target string, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// 支持环境变量覆盖 UA（BLOG_UA）
	if ua := os.Getenv("BLOG_UA"); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       body,
	}, nil
}
