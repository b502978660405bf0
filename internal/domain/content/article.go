package content

import "strings"

type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GlanceItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ArticleDocument 是单篇文章流水线的产物：每次渲染请求重新构建，不落盘。
// Covers 是作者手写的 "On this page" 列表，和由 Headings 推导的目录是两回事。
type ArticleDocument struct {
	Title     string       `json:"title"`
	Headings  []Heading    `json:"headings"`
	FAQs      []FAQ        `json:"faqs,omitempty"`
	AtAGlance []GlanceItem `json:"atAGlance,omitempty"`
	Covers    []string     `json:"covers,omitempty"`
	BodyHTML  string       `json:"bodyHtml"`
}

// ServiceName 去掉站点后缀，给 CTA 用
func ServiceName(title string) string {
	title = strings.TrimSpace(title)
	for _, suffix := range []string{
		" | Miami Septic Pros",
		" in Miami, FL",
		" in Miami",
	} {
		title = strings.TrimSuffix(title, suffix)
	}
	return strings.TrimSpace(title)
}

// WordCount 粗略统计正文词数，front matter 没给 wordCount 时兜底
func WordCount(body string) int {
	return len(strings.Fields(stripTags(body)))
}

func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
		case r == '>':
			in = false
			b.WriteByte(' ')
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
