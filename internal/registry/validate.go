package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Report 是离线一致性检查的结果。任何一条 Error 都让整次构建失败；
// Warnings 只是提示（孤儿文章属于这一类，见下）。
type Report struct {
	Errors   []string
	Warnings []string
}

func (r Report) OK() bool {
	return len(r.Errors) == 0
}

func (r Report) Render() string {
	var b strings.Builder
	if len(r.Errors) > 0 {
		b.WriteString("registry validation failed:\n")
		for _, e := range r.Errors {
			b.WriteString(" - ")
			b.WriteString(e)
			b.WriteString("\n")
		}
	}
	for _, w := range r.Warnings {
		b.WriteString(" ~ ")
		b.WriteString(w)
		b.WriteString("\n")
	}
	if r.OK() && len(r.Warnings) == 0 {
		b.WriteString("registry ok\n")
	}
	return b.String()
}

// Validate 是构建期的硬门禁：悬空外键、重复 slug、有服务没文章，
// 放过去就是线上 404 或重复内容，所以全部算硬错误。
// 唯一的例外是"文章不在索引里"——映射指向的 id 必须存在，
// 反过来文章可以暂时不被映射引用，只报 warning。
func Validate(st *Store) Report {
	var rep Report

	for _, file := range []string{ServicesFile, ResourcesFile, MappingFile} {
		if err := st.Err(file); err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s failed to load: %v", file, err))
		}
	}

	services := st.ListServices(false)
	resources := st.ListResources()
	mapping := st.Mapping()

	// 外键：每个 resource.serviceKey 必须指向真实服务
	var dangling []string
	for _, r := range resources {
		if _, ok := st.GetService(r.ServiceKey); !ok {
			dangling = append(dangling, r.ID)
		}
	}
	if len(dangling) > 0 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("resources with invalid serviceKey: %s", strings.Join(dangling, ", ")))
	}

	// slug 唯一：服务内、文章内、以及两者之间（同一个 URL 命名空间）
	seenSvcSlug := map[string]string{}
	var dupSvcSlugs []string
	for _, s := range services {
		if _, ok := seenSvcSlug[s.Slug]; ok {
			dupSvcSlugs = append(dupSvcSlugs, s.Slug)
		}
		seenSvcSlug[s.Slug] = s.Key
	}
	if len(dupSvcSlugs) > 0 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("duplicate service slugs: %s", strings.Join(dupSvcSlugs, ", ")))
	}

	seenResSlug := map[string]string{}
	var dupResSlugs, crossSlugs []string
	for _, r := range resources {
		if _, ok := seenResSlug[r.Slug]; ok {
			dupResSlugs = append(dupResSlugs, r.Slug)
		}
		seenResSlug[r.Slug] = r.ID
		if _, ok := seenSvcSlug[r.Slug]; ok {
			crossSlugs = append(crossSlugs, r.Slug)
		}
	}
	if len(dupResSlugs) > 0 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("duplicate resource slugs: %s", strings.Join(dupResSlugs, ", ")))
	}
	if len(crossSlugs) > 0 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("resource slugs colliding with service slugs: %s", strings.Join(crossSlugs, ", ")))
	}

	// 上架的服务必须至少挂一篇文章，空服务页是构建错误不是 warning
	var unsupported []string
	for _, s := range services {
		if !s.Active {
			continue
		}
		if len(mapping[s.Key]) == 0 {
			unsupported = append(unsupported, s.Key)
		}
	}
	if len(unsupported) > 0 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("active services without articles: %s", strings.Join(unsupported, ", ")))
	}

	// 映射引用的每个 id 都要能解析成真实文章
	var badRefs []string
	for key, ids := range mapping {
		for _, id := range ids {
			if _, ok := st.GetResource(id); !ok {
				badRefs = append(badRefs, key+":"+id)
			}
		}
	}
	if len(badRefs) > 0 {
		sort.Strings(badRefs)
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("mapping entries reference unknown resource ids: %s", strings.Join(badRefs, ", ")))
	}

	// 反方向只是 warning：文章可以先进库、后挂到服务
	mapped := map[string]struct{}{}
	for _, ids := range mapping {
		for _, id := range ids {
			mapped[id] = struct{}{}
		}
	}
	var orphans []string
	for _, r := range resources {
		if _, ok := mapped[r.ID]; !ok {
			orphans = append(orphans, r.ID)
		}
	}
	if len(orphans) > 0 {
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("resources not referenced by any mapping: %s", strings.Join(orphans, ", ")))
	}

	return rep
}
