package extract

import (
	"regexp"
	"strings"
)

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	nonWordRe = regexp.MustCompile(`[^\w\s-]`)
	spaceRe   = regexp.MustCompile(`\s+`)
	dashRunRe = regexp.MustCompile(`-+`)
)

// AnchorID 从标题文本生成确定性的锚点 id：
// 小写、去掉非词字符、空白折叠成 '-'。同样的文本永远得到同一个 id，
// 深链和目录才能稳定。
func AnchorID(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func StripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
