package site

import (
	"fmt"
	"strings"
)

type RouteKind string

const (
	RouteHome     RouteKind = "home"
	RouteHub      RouteKind = "hub"      // /services /resources /costs …
	RouteCategory RouteKind = "category" // /miami/services/<category>
	RouteService  RouteKind = "service"  // 服务详情页
	RouteResource RouteKind = "resource" // 文章详情页
	RouteQuote    RouteKind = "quote"
	RouteLegal    RouteKind = "legal" // /privacy /terms
)

// ChangeFreq / Priority 按页面类别固定：首页 > hub > 详情 > 法务页
func (k RouteKind) ChangeFreq() string {
	switch k {
	case RouteHome:
		return "daily"
	case RouteHub, RouteCategory, RouteResource:
		return "weekly"
	case RouteLegal:
		return "yearly"
	default:
		return "monthly"
	}
}

func (k RouteKind) Priority() float64 {
	switch k {
	case RouteHome:
		return 1.0
	case RouteHub:
		return 0.8
	case RouteCategory:
		return 0.7
	case RouteLegal:
		return 0.3
	default:
		return 0.6
	}
}

type Route struct {
	Kind RouteKind
	Path string // 以 '/' 开头的站内路径，首页为 ""
	Slug string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Path != "" {
		parts = append(parts, "path="+r.Path)
	}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	return strings.Join(parts, " ")
}

func (r Route) URL(siteURL string) string {
	return fmt.Sprintf("%s%s", strings.TrimSuffix(siteURL, "/"), r.Path)
}
