package extract

import (
	"regexp"

	"github.com/lubosik/miamisepticpros/internal/domain/content"
)

var (
	glanceBlockRe = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*bg-(?:blue|green)-50[^"]*"[^>]*>.*?<h3[^>]*>At a glance</h3>(.*?)</div>`)
	listItemRe    = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	strongLabelRe = regexp.MustCompile(`(?is)^\s*<strong>(.*?)</strong>\s*:\s*(.+)$`)
	boldLabelRe   = regexp.MustCompile(`(?s)^\s*\*\*(.*?)\*\*\s*:\s*(.+)$`)

	coversBlockRe = regexp.MustCompile(`(?is)<nav[^>]*>.*?<h2[^>]*>On this page</h2>.*?<ul[^>]*>(.*?)</ul>.*?</nav>`)
	coversItemRe  = regexp.MustCompile(`(?is)<li[^>]*><a[^>]*>(.*?)</a></li>`)
)

// AtAGlance 解析 "At a glance" 呼出块的列表项，按 加粗标签+冒号 切成
// {label, value}。单条对不上就丢掉那一条，提取是逐项尽力而为，
// 不会因为一行格式不对整块失败。
func AtAGlance(html string) []content.GlanceItem {
	block := glanceBlockRe.FindStringSubmatch(html)
	if block == nil {
		return nil
	}

	var items []content.GlanceItem
	for _, li := range listItemRe.FindAllStringSubmatch(block[1], -1) {
		inner := li[1]

		m := strongLabelRe.FindStringSubmatch(inner)
		if m == nil {
			m = boldLabelRe.FindStringSubmatch(StripTags(inner))
		}
		if m == nil {
			continue
		}
		label := StripTags(m[1])
		value := StripTags(m[2])
		if label == "" || value == "" {
			continue
		}
		items = append(items, content.GlanceItem{Label: label, Value: value})
	}
	return items
}

// Covers 取作者手写的 "On this page" 导航列表，作为目录的显式覆盖。
func Covers(html string) []string {
	block := coversBlockRe.FindStringSubmatch(html)
	if block == nil {
		return nil
	}

	var out []string
	for _, li := range coversItemRe.FindAllStringSubmatch(block[1], -1) {
		text := StripTags(li[1])
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}
