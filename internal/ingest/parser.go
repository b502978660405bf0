package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var errNoFrontMatter = errors.New("no front matter found")
var errInvalidFrontMatter = errors.New("invalid front matter")

// FrontMatter 是文档头部的 key/value 元数据。
// 解析失败时调用方拿到空 map，正文照常返回，绝不让单篇文档搞挂整个构建。
type FrontMatter map[string]any

func (fm FrontMatter) Str(key string) string {
	if v, ok := fm[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func (fm FrontMatter) Int(key string) int {
	switch v := fm[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (fm FrontMatter) Time(key string) time.Time {
	switch v := fm[key].(type) {
	case time.Time:
		return v
	case string:
		return ParseTime(v)
	}
	return time.Time{}
}

type Source struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (fm FrontMatter) Sources() []Source {
	raw, ok := fm["sources"].([]any)
	if !ok {
		return nil
	}
	var out []Source
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := Source{}
		if t, ok := m["title"].(string); ok {
			s.Title = strings.TrimSpace(t)
		}
		if u, ok := m["url"].(string); ok {
			s.URL = strings.TrimSpace(u)
		}
		if s.Title != "" || s.URL != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseFrontMatter 切出 "---" 包住的 yaml 头和正文。
// yaml 解析失败时仍然返回切好的正文，由调用方决定怎么记日志。
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return FrontMatter{}, raw, errNoFrontMatter
	}

	// 统一换行符
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return FrontMatter{}, norm, errNoFrontMatter
	}

	rest := norm[len(sepLine):]

	var yamlPart, bodyPart []byte

	// 最常见：中间有 "\n---\n"
	if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		yamlPart = parts[0]
		bodyPart = parts[1]
	} else {
		if bytes.HasSuffix(rest, []byte("\n"+sep)) {
			yamlPart = rest[:len(rest)-len("\n"+sep)]
			bodyPart = nil
		} else if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
			// "---\n---"：空 front matter，无正文
			yamlPart = nil
			bodyPart = nil
		} else {
			return FrontMatter{}, norm, errInvalidFrontMatter
		}
	}

	yamlPart = bytes.TrimSpace(yamlPart)
	bodyPart = bytes.TrimSpace(bodyPart)

	fm := FrontMatter{}
	if len(yamlPart) > 0 {
		if err := yaml.Unmarshal(yamlPart, &fm); err != nil {
			return FrontMatter{}, bodyPart, err
		}
	}
	return fm, bodyPart, nil
}

func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func HashBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
