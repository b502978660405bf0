package extract

import (
	"regexp"
	"strings"

	"github.com/lubosik/miamisepticpros/internal/domain/content"
)

// 答案低于这个长度的 H3 片段当作误匹配丢掉
const minAnswerLen = 10

var (
	faqHeadingRe  = regexp.MustCompile(`(?is)<h2[^>]*id=["']faqs["'][^>]*>.*?</h2>`)
	faqBoundaryRe = regexp.MustCompile(`(?i)<h2[\s>]|<hr|<script|</html`)
	h3OpenRe      = regexp.MustCompile(`(?i)<h3[^>]*>`)
	h3CloseRe     = regexp.MustCompile(`(?i)</h3>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script.*?</script>`)
)

// FAQSpan 定位 FAQ 区段在原文里的位置：从 id="faqs" 的 H2 开始，
// 到下一个顶级标题 / <hr> / <script> / 文档结束为止。
// 归一化那边删除整个区段也用它，两边的边界必须一致。
func FAQSpan(html string) (start, end int, ok bool) {
	loc := faqHeadingRe.FindStringIndex(html)
	if loc == nil {
		return 0, 0, false
	}
	end = len(html)
	if b := faqBoundaryRe.FindStringIndex(html[loc[1]:]); b != nil {
		end = loc[1] + b[0]
	}
	return loc[0], end, true
}

// FAQSection 返回区段正文（不含开头的 H2）。没有这个区段不算错误。
func FAQSection(html string) (string, bool) {
	start, end, ok := FAQSpan(html)
	if !ok {
		return "", false
	}
	head := faqHeadingRe.FindStringIndex(html[start:end])
	return html[start+head[1] : end], true
}

// FAQs 在区段内按 H3 边界切分：闭合标签之前是问题，剩下的是答案。
// 答案保留行内 HTML，只剥 <script>。问题必须带 '?'，答案不能太短，
// 这样散落的 H3 不会被误收进来。
func FAQs(html string) []content.FAQ {
	section, ok := FAQSection(html)
	if !ok {
		return nil
	}

	var out []content.FAQ
	for _, part := range h3OpenRe.Split(section, -1) {
		close := h3CloseRe.FindStringIndex(part)
		if close == nil {
			continue
		}
		question := StripTags(part[:close[0]])
		answer := strings.TrimSpace(part[close[1]:])
		answer = strings.TrimSpace(scriptBlockRe.ReplaceAllString(answer, ""))

		if question == "" || !strings.Contains(question, "?") {
			continue
		}
		if len(answer) <= minAnswerLen {
			continue
		}
		out = append(out, content.FAQ{Question: question, Answer: answer})
	}
	return out
}
