package render

import (
	"fmt"
	"strings"

	"github.com/lubosik/miamisepticpros/internal/domain/config"
	"github.com/lubosik/miamisepticpros/internal/domain/content"
	"github.com/lubosik/miamisepticpros/internal/extract"
	"github.com/lubosik/miamisepticpros/internal/ingest"
	"github.com/lubosik/miamisepticpros/internal/normalize"
)

// ArticleBuilder 把一篇源文档走完整条流水线：
// markdown 先转 HTML；FAQ / at-a-glance / covers 从原文里抽
// （归一化会把这些块删掉，顺序不能反）；目录标题从归一化后的正文取。
type ArticleBuilder struct {
	md   *MarkdownRenderer
	norm *normalize.Normalizer
}

func NewArticleBuilder(cta config.CTAConfig) *ArticleBuilder {
	return &ArticleBuilder{
		md: NewMarkdownRenderer(),
		norm: &normalize.Normalizer{
			Phone:     cta.Phone,
			QuotePath: cta.QuotePath,
		},
	}
}

func (b *ArticleBuilder) Build(doc ingest.Document) (content.ArticleDocument, error) {
	body := doc.Body
	if doc.Markdown {
		out, err := b.md.Render([]byte(body))
		if err != nil {
			return content.ArticleDocument{}, fmt.Errorf("markdown render(%s): %w", doc.Key, err)
		}
		body = string(out)
	}

	title := doc.FrontMatter.Str("title")
	if title == "" {
		title = titleFromKey(doc.Key)
	}
	title = content.ServiceName(title)

	faqs := extract.FAQs(body)
	glance := extract.AtAGlance(body)
	covers := extract.Covers(body)

	normalized := b.norm.Body(body, title)

	return content.ArticleDocument{
		Title:     title,
		Headings:  extract.Headings(normalized),
		FAQs:      faqs,
		AtAGlance: glance,
		Covers:    covers,
		BodyHTML:  normalized,
	}, nil
}

func titleFromKey(key string) string {
	base := key
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		base = key[i+1:]
	}
	return strings.ReplaceAll(base, "-", " ")
}
