package ingest

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("document not found")

// Document 是按 key 加载出来的单篇源文档。
type Document struct {
	Key         string
	Path        string
	FrontMatter FrontMatter
	Body        string
	Markdown    bool // false 表示正文已经是 HTML
	ContentHash string
}

type Loader struct {
	Root string
}

// Load 按 key 找源文档，几种历史格式按顺序尝试。
// front matter 坏掉只记 warn，不报错：每个页面相互独立，坏元数据不该挡住渲染。
func (l Loader) Load(key string) (Document, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return Document{}, ErrNotFound
	}

	for _, cand := range []string{
		key + ".md",
		key + ".mdx",
		filepath.Join(key, "index.html"),
		key + ".html",
	} {
		path := filepath.Join(l.Root, filepath.FromSlash(cand))
		doc, err := l.loadPath(key, path)
		if err == nil {
			return doc, nil
		}
		if !os.IsNotExist(err) {
			return Document{}, err
		}
	}
	return Document{}, ErrNotFound
}

func (l Loader) loadPath(key, path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	fm, body, fmErr := ParseFrontMatter(raw)
	switch {
	case fmErr == nil, errors.Is(fmErr, errNoFrontMatter):
	default:
		// 元数据坏了：空 map 兜底，正文照常用
		log.Printf("[warn] %s: bad front matter: %v", path, fmErr)
		fm = FrontMatter{}
	}

	ext := strings.ToLower(filepath.Ext(path))
	return Document{
		Key:         key,
		Path:        path,
		FrontMatter: fm,
		Body:        string(body),
		Markdown:    ext != ".html" && ext != ".htm",
		ContentHash: HashBytes(raw),
	}, nil
}
