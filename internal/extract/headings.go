package extract

import (
	"regexp"
	"strings"

	"github.com/lubosik/miamisepticpros/internal/domain/content"
)

var (
	h2WithIDRe = regexp.MustCompile(`(?is)<h2\s+[^>]*id=["']([^"']+)["'][^>]*>(.*?)</h2>`)
	h3Re       = regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`)
)

// Headings 扫描正文里的结构地标：
//   - H2 只收已经带锚点 id 的；"Sources & References" 归 Sources 组件管，排除
//   - H3 只收疑问句（含 '?'），视作 FAQ 候选，没有 id 就按文本生成
func Headings(html string) []content.Heading {
	var out []content.Heading

	for _, m := range h2WithIDRe.FindAllStringSubmatch(html, -1) {
		id := m[1]
		text := StripTags(m[2])
		if text == "" || isSourcesHeading(text) {
			continue
		}
		out = append(out, content.Heading{ID: id, Text: text, Level: 2})
	}

	for _, m := range h3Re.FindAllStringSubmatch(html, -1) {
		text := StripTags(m[1])
		if text == "" || !strings.Contains(text, "?") {
			continue
		}
		out = append(out, content.Heading{ID: AnchorID(text), Text: text, Level: 3})
	}

	return out
}

func isSourcesHeading(text string) bool {
	return strings.Contains(text, "Sources & References") ||
		strings.Contains(text, "Sources &amp; References")
}
