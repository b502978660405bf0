package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lubosik/miamisepticpros/internal/extract"
)

// Normalizer 把抽取过的区块从正文里删掉（避免重复渲染），再把 CTA 插到
// 约定的锚点上。全部是纯 string->string 变换，不碰外部状态；
// 对已经归一化过的正文重跑一遍是 no-op。
type Normalizer struct {
	Phone     string // tel: 链接用，形如 +13055550100
	QuotePath string
}

var (
	heroFigureRe = regexp.MustCompile(`(?is)<figure[^>]*class="mb-8"[^>]*>.*?</figure>`)
	h1Re         = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)
	glanceRe     = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*bg-(?:blue|green)-50[^"]*"[^>]*>.*?<h3[^>]*>At a glance</h3>.*?</div>`)
	legacyTOCRe  = regexp.MustCompile(`(?is)<nav[^>]*class="[^"]*mb-8[^"]*"[^>]*>.*?</nav>`)
	sourcesRe    = regexp.MustCompile(`(?is)<h2[^>]*>\s*Sources[^<]*</h2>.*?</div>`)
	faqCatchRe   = regexp.MustCompile(`(?is)<h2[^>]*>\s*Frequently Asked Questions\s*</h2>`)
	// 老 CTA 块里固定嵌一层按钮 div
	legacyCTARe = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*bg-gradient[^"]*"[^>]*>.*?</div>\s*</div>`)
	footerRe    = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*border-t[^"]*text-sm[^"]*"[^>]*>.*?</div>`)
	hrRe        = regexp.MustCompile(`(?i)<hr\s*/?>`)
	sectionRe   = regexp.MustCompile(`(?is)<section[^>]*>.*?</section>`)
	sectionTag  = regexp.MustCompile(`(?i)</?section[^>]*>`)
)

// Body 产出最终 bodyHtml。删除顺序是有讲究的：hero 图、H1、旧呼出块、
// 旧目录、旧 sources、成本卡片重排、FAQ 区段、旧 CTA，最后才清 <section>
// 包装，否则前面的模式会被包装层挡住。
func (n *Normalizer) Body(html, serviceName string) string {
	html = replaceFirst(heroFigureRe, html, "")
	html = replaceFirst(h1Re, html, "")
	html = replaceFirst(glanceRe, html, "")
	html = replaceFirst(legacyTOCRe, html, "")
	html = replaceFirst(sourcesRe, html, "")

	html = RewriteCostCard(html, serviceName)

	if start, end, ok := extract.FAQSpan(html); ok {
		html = html[:start] + html[end:]
	}
	html = faqCatchRe.ReplaceAllString(html, "")

	html = injectedCTARe.ReplaceAllString(html, "")
	html = replaceFirst(legacyCTARe, html, "")
	html = replaceFirst(footerRe, html, "")

	html = hrRe.ReplaceAllString(html, "")
	html = sectionRe.ReplaceAllString(html, "")
	html = sectionTag.ReplaceAllString(html, "")

	html = EnsureHeadingIDs(html)
	html = tidy(html)
	html = n.injectCTAs(html, serviceName)

	return strings.TrimSpace(html)
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// EnsureHeadingIDs 给没有锚点的 h2-h6 补上由文本推导的 id。
// RE2 没有反向引用，按级别逐个处理。
func EnsureHeadingIDs(html string) string {
	for level := 2; level <= 6; level++ {
		re := regexp.MustCompile(fmt.Sprintf(`(?is)<h%d([^>]*)>(.*?)</h%d>`, level, level))
		html = re.ReplaceAllStringFunc(html, func(m string) string {
			sub := re.FindStringSubmatch(m)
			attrs, inner := sub[1], sub[2]
			if strings.Contains(attrs, "id=") {
				return m
			}
			id := extract.AnchorID(extract.StripTags(inner))
			if id == "" {
				return m
			}
			return fmt.Sprintf("<h%d%s id=%q>%s</h%d>", level, attrs, id, inner, level)
		})
	}
	return html
}

var (
	mdBoldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdEmRe      = regexp.MustCompile(`\*([^*]+)\*`)
	backtickRe  = regexp.MustCompile("`{1,3}")
	emDashRunRe = regexp.MustCompile(`—{2,}|--{2,}`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	spaceRunRe  = regexp.MustCompile(`[ \t]{2,}`)
)

// tidy 清掉脚本生成文档里常见的 markdown 残留和多余空白
func tidy(html string) string {
	html = mdBoldRe.ReplaceAllString(html, "$1")
	html = mdEmRe.ReplaceAllString(html, "$1")
	html = backtickRe.ReplaceAllString(html, "")
	html = emDashRunRe.ReplaceAllString(html, "—")
	html = blankRunRe.ReplaceAllString(html, "\n\n")
	html = spaceRunRe.ReplaceAllString(html, " ")
	return strings.TrimSpace(html)
}
