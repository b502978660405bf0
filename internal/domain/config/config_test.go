package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domainerr "github.com/lubosik/miamisepticpros/internal/domain/errors"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateAccumulatesFieldErrors(t *testing.T) {
	cfg := Default()
	cfg.Site.SiteURL = "not a url"
	cfg.CTA.QuotePath = "quote"
	cfg.CTA.Phone = "305-555-0100"

	err := cfg.Validate()
	require.ErrorIs(t, err, domainerr.ErrInvalid)

	var ve domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Items, 3)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  name: Another Septic Co
cta:
  phone: "+13055550199"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Another Septic Co", cfg.Site.Name)
	require.Equal(t, "+13055550199", cfg.CTA.Phone)

	// 文件没写到的字段保留默认值
	require.Equal(t, "https://miamisepticpros.com", cfg.Site.SiteURL)
	require.Equal(t, "content/resources", cfg.Content.SourceDir)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().Site.SiteURL, cfg.Site.SiteURL)
}
