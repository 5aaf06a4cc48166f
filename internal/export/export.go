// 包 export 负责将索引写为 JSON 文件（2 空格缩进，整文件覆盖）。
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"go-blog-tools/internal/model"
)

// WriteIndex 将 entries 写入 path；无条目时写出 []。
func WriteIndex(fs afero.Fs, path string, entries []model.IndexEntry) error {
	if entries == nil {
		entries = []model.IndexEntry{}
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		f.Close()
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
