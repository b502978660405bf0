package config

import (
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	domainerr "github.com/lubosik/miamisepticpros/internal/domain/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Build   BuildConfig   `yaml:"build"`
	CTA     CTAConfig     `yaml:"cta"`
}

type SiteConfig struct {
	Name    string `yaml:"name"`
	SiteURL string `yaml:"site_url"`
}

type ContentConfig struct {
	SourceDir   string `yaml:"source_dir"`   // front-matter 文档根目录
	RegistryDir string `yaml:"registry_dir"` // services.json / resources.json / service-to-articles.json
}

type BuildConfig struct {
	PublicDir string    `yaml:"public_dir"`
	IndexPath string    `yaml:"index_path"`
	Now       time.Time `yaml:"-"`
}

type CTAConfig struct {
	Phone     string `yaml:"phone"`
	QuotePath string `yaml:"quote_path"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:    "Miami Septic Pros",
			SiteURL: "https://miamisepticpros.com",
		},
		Content: ContentConfig{
			SourceDir:   "content/resources",
			RegistryDir: "data/registry",
		},
		Build: BuildConfig{
			PublicDir: "public",
			IndexPath: ".sitegen/index.db",
			Now:       time.Now(),
		},
		CTA: CTAConfig{
			Phone:     "+13055550100",
			QuotePath: "/quote/",
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Name) == "" {
		ve.Add("site.name", "must not be empty")
	}

	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Content.SourceDir) == "" {
		ve.Add("content.source_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Content.RegistryDir) == "" {
		ve.Add("content.registry_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}

	if qp := strings.TrimSpace(c.CTA.QuotePath); qp != "" && !strings.HasPrefix(qp, "/") {
		ve.Add("cta.quote_path", "must start with '/'")
	}
	// tel: 链接要求 E.164
	if p := strings.TrimSpace(c.CTA.Phone); p != "" && !phoneRe.MatchString(p) {
		ve.Addf("cta.phone", "%q is not an E.164 number", p)
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

var phoneRe = regexp.MustCompile(`^\+[0-9]{7,15}$`)

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// 直接 Unmarshal 到 cfg 上：文件里写到的字段覆盖默认值，其余保留 Default
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Validate(); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
