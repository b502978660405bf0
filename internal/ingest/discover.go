package ingest

import (
	"io/fs"
	"path/filepath"
	"strings"
)

type SourceFile struct {
	Key  string // 相对 root 的文档 key，不带扩展名
	Path string
}

// DiscoverSource 收集 root 下所有文章源文档。
// 历史遗留：老文档是 <key>/index.html，新文档是 <key>.md / <key>.mdx。
func DiscoverSource(root string) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		var ok bool
		switch {
		case strings.HasSuffix(name, ".md"), strings.HasSuffix(name, ".mdx"), strings.HasSuffix(name, ".markdown"):
			ok = true
		case strings.HasSuffix(name, ".html"), strings.HasSuffix(name, ".htm"):
			ok = true
		}
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, SourceFile{
			Key:  keyFromRel(rel),
			Path: path,
		})
		return nil
	})
	return out, err
}

func keyFromRel(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	// <key>/index.html 形式的 key 是目录本身
	rel = strings.TrimSuffix(rel, "/index")
	return rel
}
