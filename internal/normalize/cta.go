package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// 注入的 CTA 用注释标记包住：删除步骤按标记整段剥掉，
// 这样重跑归一化能精确还原到注入前的正文。
const (
	ctaStart = "<!-- article-cta -->"
	ctaEnd   = "<!-- /article-cta -->"
)

var (
	injectedCTARe = regexp.MustCompile(`(?s)<!-- article-cta -->.*?<!-- /article-cta -->`)
	costHeadingRe = regexp.MustCompile(`(?is)<h2[^>]*id=["']cost["'][^>]*>.*?</h2>`)
	firstH2Re     = regexp.MustCompile(`(?is)<h2[^>]*>.*?</h2>`)
	nextH2Re      = regexp.MustCompile(`(?i)<h2[\s>]`)
)

// injectCTAs 保证每篇文章至少有一个转化入口：
//   - 文中 CTA 插在 id="cost" 区段结束处；没有 cost 就插在第一个 H2 区段后；
//     一个 H2 都没有就和结尾 CTA 一起追加在末尾
//   - 结尾 CTA 无条件追加
func (n *Normalizer) injectCTAs(html, serviceName string) string {
	mid := n.midCTA(serviceName)
	end := n.endCTA(serviceName)

	var at int
	if loc := costHeadingRe.FindStringIndex(html); loc != nil {
		at = sectionEnd(html, loc[1])
	} else if loc := firstH2Re.FindStringIndex(html); loc != nil {
		at = sectionEnd(html, loc[1])
	} else {
		return html + mid + end
	}
	return html[:at] + mid + html[at:] + end
}

// sectionEnd 返回 from 之后下一个 H2 的起点，没有就到文档末尾
func sectionEnd(html string, from int) int {
	if loc := nextH2Re.FindStringIndex(html[from:]); loc != nil {
		return from + loc[0]
	}
	return len(html)
}

func (n *Normalizer) midCTA(serviceName string) string {
	name := serviceName
	if name == "" {
		name = "Septic Service"
	}
	return ctaStart + fmt.Sprintf(`<div class="mt-12 p-8 bg-gradient-to-r from-green-600 to-green-700 rounded-lg text-white text-center"><h2 class="text-3xl font-bold mb-4">Ready to Schedule Your %s?</h2><p class="text-lg mb-6 text-green-50">Get a fast, transparent quote from Miami's trusted septic experts.</p><div class="flex flex-col sm:flex-row gap-4 justify-center"><a href="%s" class="inline-block bg-white text-green-600 px-8 py-3 rounded-md font-semibold hover:bg-gray-100 transition-colors">Get Free Quote</a><a href="tel:%s" class="inline-block bg-green-800 text-white px-8 py-3 rounded-md font-semibold hover:bg-green-900 transition-colors">Call %s</a></div></div>`,
		name, n.QuotePath, n.Phone, displayPhone(n.Phone)) + ctaEnd
}

func (n *Normalizer) endCTA(serviceName string) string {
	name := serviceName
	if name == "" {
		name = "septic service"
	}
	return ctaStart + fmt.Sprintf(`<div class="mt-12 p-8 bg-gradient-to-r from-green-700 to-green-800 rounded-lg text-white text-center"><h2 class="text-2xl font-bold mb-4">Still have questions about %s?</h2><p class="text-lg mb-6 text-green-50">Talk to a licensed Miami-Dade septic professional today.</p><div class="flex flex-col sm:flex-row gap-4 justify-center"><a href="%s" class="inline-block bg-white text-green-700 px-8 py-3 rounded-md font-semibold hover:bg-gray-100 transition-colors">Request a Quote</a><a href="tel:%s" class="inline-block bg-green-900 text-white px-8 py-3 rounded-md font-semibold hover:bg-green-950 transition-colors">Call %s</a></div></div>`,
		name, n.QuotePath, n.Phone, displayPhone(n.Phone)) + ctaEnd
}

// displayPhone 把 +1XXXXXXXXXX 排成 (XXX) XXX-XXXX，排不了就原样显示
func displayPhone(phone string) string {
	digits := strings.TrimPrefix(phone, "+1")
	if len(digits) != 10 || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}
