package sitemap

import (
	"log"
	"strings"
	"time"

	"github.com/lubosik/miamisepticpros/internal/domain/config"
	"github.com/lubosik/miamisepticpros/internal/domain/content"
	"github.com/lubosik/miamisepticpros/internal/domain/site"
	"github.com/lubosik/miamisepticpros/internal/registry"
)

type Entry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// 固定的 hub / 法务页路径，注册表之外的那部分站点骨架
var staticRoutes = []site.Route{
	{Kind: site.RouteHome, Path: ""},
	{Kind: site.RouteHub, Path: "/services"},
	{Kind: site.RouteHub, Path: "/locations"},
	{Kind: site.RouteHub, Path: "/resources"},
	{Kind: site.RouteHub, Path: "/issues"},
	{Kind: site.RouteHub, Path: "/costs"},
	{Kind: site.RouteHub, Path: "/miami/services"},
	{Kind: site.RouteQuote, Path: "/quote"},
	{Kind: site.RouteLegal, Path: "/privacy"},
	{Kind: site.RouteLegal, Path: "/terms"},
}

// Project 从注册表确定性地枚举全部公开 URL。
// 某份注册表没加载成功就跳过那一类 URL，剩下的照常出：
// sitemap 缺一块好过整个生成失败。
func Project(cfg config.Config, st *registry.Store) []Entry {
	now := cfg.Build.Now

	var out []Entry

	add := func(r site.Route, lastMod time.Time) {
		if lastMod.IsZero() {
			lastMod = now
		}
		out = append(out, Entry{
			Loc:        r.URL(cfg.Site.SiteURL),
			LastMod:    lastMod,
			ChangeFreq: r.Kind.ChangeFreq(),
			Priority:   r.Kind.Priority(),
		})
	}

	for _, r := range staticRoutes {
		add(r, now)
	}
	for _, cat := range []content.ServiceCategory{
		content.CategorySystemService,
		content.CategorySystemContractor,
		content.CategoryDrainageContractor,
		content.CategorySewageTreatment,
	} {
		add(site.Route{
			Kind: site.RouteCategory,
			Path: "/miami/services/" + categorySegment(cat),
		}, now)
	}

	if err := st.Err(registry.ServicesFile); err != nil {
		log.Printf("[warn] sitemap: services registry unavailable, skipping: %v", err)
	} else {
		for _, svc := range st.ListServices(true) {
			add(site.Route{Kind: site.RouteService, Path: prefixPath("/services/", svc.Slug), Slug: svc.Slug}, svc.UpdatedTime())
		}
	}

	if err := st.Err(registry.ResourcesFile); err != nil {
		log.Printf("[warn] sitemap: resources registry unavailable, skipping: %v", err)
	} else {
		for _, r := range st.ListResources() {
			add(site.Route{Kind: site.RouteResource, Path: prefixPath("/resources/", r.Slug), Slug: r.Slug}, r.UpdatedTime())
		}
	}

	return out
}

func categorySegment(cat content.ServiceCategory) string {
	return strings.ReplaceAll(strings.ToLower(string(cat)), " ", "-")
}

// 注册表里的 slug 有的带完整路径有的是裸 slug，统一成站内路径
func prefixPath(prefix, slug string) string {
	if strings.HasPrefix(slug, "/") {
		return slug
	}
	return prefix + slug + "/"
}
