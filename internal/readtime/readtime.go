// 包 readtime 按固定阅读速度估算阅读时长，并格式化为可读文本。
package readtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultWordsPerMinute 为默认阅读速度（词/分钟）。
	DefaultWordsPerMinute = 200
	// DefaultBodyLimit 为参与计数的正文前缀长度（字符）。
	DefaultBodyLimit = 2048
)

// Estimate 为估算结果。
type Estimate struct {
	Seconds int
	Human   string
}

// Prefix 返回 body 的前 limit 个字符；limit <= 0 时不截断。
func Prefix(body string, limit int) string {
	if limit <= 0 {
		return body
	}
	n := 0
	for i := range body {
		if n == limit {
			return body[:i]
		}
		n++
	}
	return body
}

// Words 统计以空白分隔的词数。
func Words(s string) int { return len(strings.Fields(s)) }

// Of 将 summary 与正文前缀拼接后计数，按 wpm 换算为秒（四舍五入）。
// wpm <= 0 时使用默认速度。
func Of(summary, bodyPrefix string, wpm int) Estimate {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := Words(summary + "\n" + bodyPrefix)
	seconds := int(math.Round(float64(words) / float64(wpm) * 60))
	return Estimate{Seconds: seconds, Human: Human(seconds)}
}

// Human 格式化秒数：
// - < 60：N seconds
// - < 3600：M minute(s)，M 为四舍五入的分钟数
// - 其余：H hours，保留一位小数
func Human(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	case seconds < 3600:
		m := int(math.Round(float64(seconds) / 60))
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	default:
		h := strconv.FormatFloat(float64(seconds)/3600, 'f', 1, 64)
		return h + " hours"
	}
}
