package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	domainbuild "github.com/lubosik/miamisepticpros/internal/domain/build"
	"github.com/lubosik/miamisepticpros/internal/domain/config"
	"github.com/lubosik/miamisepticpros/internal/domain/content"
	"github.com/lubosik/miamisepticpros/internal/index"
	"github.com/lubosik/miamisepticpros/internal/ingest"
	"github.com/lubosik/miamisepticpros/internal/registry"
	"github.com/lubosik/miamisepticpros/internal/render"
	"github.com/lubosik/miamisepticpros/internal/sitemap"
)

type Builder struct {
	Cfg config.Config
}

type Result struct {
	Articles int
	Skipped  int // 指纹没变、产物还在，直接复用
	Warnings []ingest.Warning
	Report   registry.Report
}

var ErrRegistryInvalid = errors.New("registry validation failed")

// articlePayload 是写给渲染层的产物文件，一篇一个 JSON
type articlePayload struct {
	Slug       string          `json:"slug"`
	ServiceKey string          `json:"serviceKey"`
	Updated    string          `json:"updated,omitempty"`
	Sources    []ingest.Source `json:"sources,omitempty"`
	content.ArticleDocument
}

// Run 一次全量构建：注册表校验是硬门禁，不过就停；
// 单篇文档的问题只记 warn，不影响其他页面。
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	st := registry.Open(b.Cfg.Content.RegistryDir)

	rep := registry.Validate(st)
	if !rep.OK() {
		return &Result{Report: rep}, fmt.Errorf("%w: %d error(s)", ErrRegistryInvalid, len(rep.Errors))
	}

	docs, warns, err := ingest.LoadAll(b.Cfg.Content.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}

	idx, err := index.Open(index.OpenOptions{Path: b.Cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	outDir := filepath.Join(b.Cfg.Build.PublicDir, "resources")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	ab := render.NewArticleBuilder(b.Cfg.CTA)
	cfgHash := domainbuild.HashStrings(b.Cfg.CTA.Phone, b.Cfg.CTA.QuotePath)

	res := &Result{Warnings: warns}
	var entries []index.Meta

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fp := domainbuild.Fingerprint{
			ContentHash: doc.ContentHash,
			ConfigHash:  cfgHash,
		}
		fp.ComputeRenderHash()

		slug := resolveSlug(doc)
		outPath := filepath.Join(outDir, slug+".json")

		// 指纹一致且产物还在：跳过重渲染，沿用旧索引条目
		if m, err := idx.FreshMeta(slug, fp.RenderHash); err == nil {
			if _, statErr := os.Stat(outPath); statErr == nil {
				entries = append(entries, m)
				res.Skipped++
				continue
			}
		}

		art, err := ab.Build(doc)
		if err != nil {
			log.Printf("[warn] %s: %v", doc.Path, err)
			res.Warnings = append(res.Warnings, ingest.Warning{Path: doc.Path, Msg: err.Error()})
			continue
		}

		svcKey := serviceKeyFor(doc)
		updated := doc.FrontMatter.Time("updated")
		if updated.IsZero() {
			updated = doc.FrontMatter.Time("published")
		}

		payload := articlePayload{
			Slug:            slug,
			ServiceKey:      svcKey,
			Sources:         doc.FrontMatter.Sources(),
			ArticleDocument: art,
		}
		if !updated.IsZero() {
			payload.Updated = updated.Format(time.RFC3339)
		}
		if err := writeJSON(outPath, payload); err != nil {
			return nil, fmt.Errorf("write article(%s): %w", slug, err)
		}

		wc := doc.FrontMatter.Int("wordCount")
		if wc == 0 {
			wc = content.WordCount(art.BodyHTML)
		}
		entries = append(entries, index.Meta{
			Slug:       slug,
			Key:        doc.Key,
			ServiceKey: svcKey,
			Title:      art.Title,
			Updated:    updated,
			WordCount:  wc,
			RenderHash: fp.RenderHash,
		})
		res.Articles++
	}

	if err := idx.Rebuild(entries); err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}

	if err := b.writeSitemap(st); err != nil {
		return nil, fmt.Errorf("write sitemap: %w", err)
	}

	res.Report = rep
	return res, nil
}

func (b *Builder) writeSitemap(st *registry.Store) error {
	entries := sitemap.Project(b.Cfg, st)

	path := filepath.Join(b.Cfg.Build.PublicDir, "sitemap.xml")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sitemap.WriteXML(f, entries)
}

// resolveSlug：front matter 里写了 slug 就用它，
// 否则把文档 key 压平（content/resources/<service>/<state-city> 的层级进 slug）
func resolveSlug(doc ingest.Document) string {
	if s := doc.FrontMatter.Str("slug"); s != "" {
		return strings.Trim(s, "/")
	}
	return strings.ReplaceAll(doc.Key, "/", "-")
}

// serviceKeyFor：显式的 serviceKey 优先，没有就按目录约定取 key 的第一段
func serviceKeyFor(doc ingest.Document) string {
	if k := doc.FrontMatter.Str("serviceKey"); k != "" {
		return k
	}
	if k := doc.FrontMatter.Str("service"); k != "" {
		return k
	}
	if i := strings.IndexByte(doc.Key, '/'); i > 0 {
		return doc.Key[:i]
	}
	return ""
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
