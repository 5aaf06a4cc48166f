package meta

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Kind 为 front matter 取值的类型标签。
type Kind int

const (
	Absent Kind = iota
	String
	Number
	Bool
	Date
	List
	Other
)

// isoLayout 为 ISO-8601 UTC 格式，精确到毫秒。
const isoLayout = "2006-01-02T15:04:05.000Z"

// Value 为带类型标签的元数据取值，零值即 Absent。
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
	list []Value
	raw  any
}

// Of 将 YAML/JSON 解码得到的任意值包装为 Value。
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return Value{kind: String, s: x}
	case bool:
		return Value{kind: Bool, b: x}
	case int:
		return Value{kind: Number, n: float64(x)}
	case int64:
		return Value{kind: Number, n: float64(x)}
	case uint64:
		return Value{kind: Number, n: float64(x)}
	case float64:
		return Value{kind: Number, n: x}
	case time.Time:
		return Value{kind: Date, t: x}
	case []string:
		out := make([]Value, 0, len(x))
		for _, s := range x {
			out = append(out, Value{kind: String, s: s})
		}
		return Value{kind: List, list: out}
	case []any:
		out := make([]Value, 0, len(x))
		for _, it := range x {
			out = append(out, Of(it))
		}
		return Value{kind: List, list: out}
	default:
		return Value{kind: Other, raw: v}
	}
}

func StringValue(s string) Value { return Value{kind: String, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == Absent }

// Text 将标量渲染为字符串；列表按逗号拼接，缺省返回空串。
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.s
	case Number:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case Date:
		return v.t.UTC().Format(isoLayout)
	case List:
		parts := make([]string, 0, len(v.list))
		for _, it := range v.list {
			parts = append(parts, it.Text())
		}
		return strings.Join(parts, ",")
	case Other:
		return fmt.Sprint(v.raw)
	default:
		return ""
	}
}

// Strings 返回字符串列表：列表逐项取 Text，单个标量视为一项，缺省返回空列表（非 nil）。
func (v Value) Strings() []string {
	switch v.kind {
	case Absent:
		return []string{}
	case List:
		out := make([]string, 0, len(v.list))
		for _, it := range v.list {
			if it.IsAbsent() {
				continue
			}
			out = append(out, it.Text())
		}
		return out
	default:
		return []string{v.Text()}
	}
}

// Time 解析为时间：字符串交给 dateparse，数字按毫秒时间戳处理。
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case Date:
		return v.t, true
	case String:
		s := strings.TrimSpace(v.s)
		if s == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case Number:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(v.n)).UTC(), true
	default:
		return time.Time{}, false
	}
}

// Truthy 对应 `x || default` 的判定：空串/0/false/缺省为假。
func (v Value) Truthy() bool {
	switch v.kind {
	case String:
		return v.s != ""
	case Number:
		return v.n != 0 && !math.IsNaN(v.n)
	case Bool:
		return v.b
	case Date, List:
		return true
	case Other:
		return v.raw != nil
	default:
		return false
	}
}

// Or 在取值为假时返回 def。
func (v Value) Or(def Value) Value {
	if v.Truthy() {
		return v
	}
	return def
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Absent:
		return []byte("null"), nil
	case String:
		return json.Marshal(v.s)
	case Number:
		return json.Marshal(v.n)
	case Bool:
		return json.Marshal(v.b)
	case Date:
		return json.Marshal(v.t.UTC().Format(isoLayout))
	case List:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.raw)
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	*v = Of(x)
	return nil
}
