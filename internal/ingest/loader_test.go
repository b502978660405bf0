package ingest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoaderHTMLFallback(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "septic-tank-pumping"), 0o755))
	html := "---\ntitle: Septic Tank Pumping\n---\n<h2 id=\"cost\">Cost</h2>"
	require.NoError(t, os.WriteFile(filepath.Join(root, "septic-tank-pumping", "index.html"), []byte(html), 0o644))

	doc, err := Loader{Root: root}.Load("septic-tank-pumping")
	require.NoError(t, err)
	require.False(t, doc.Markdown)
	require.Equal(t, "Septic Tank Pumping", doc.FrontMatter.Str("title"))
	require.Equal(t, `<h2 id="cost">Cost</h2>`, doc.Body)
	require.NotEmpty(t, doc.ContentHash)
}

func TestLoaderPrefersMarkdown(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("---\ntitle: md\n---\nmd body\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.html"), []byte("html body"), 0o644))

	doc, err := Loader{Root: root}.Load("doc")
	require.NoError(t, err)
	require.True(t, doc.Markdown)
	require.Equal(t, "md body", doc.Body)
}

func TestLoaderNotFound(t *testing.T) {
	_, err := Loader{Root: t.TempDir()}.Load("missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = Loader{Root: t.TempDir()}.Load("  ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderBadFrontMatterStillLoads(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("---\ntitle: [broken\n---\nbody\n"), 0o644))

	doc, err := Loader{Root: root}.Load("doc")
	require.NoError(t, err)
	require.Empty(t, doc.FrontMatter)
	require.Equal(t, "body", doc.Body)
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "costs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "costs", "pumping.md"),
		[]byte("---\ntitle: Pumping Cost\n---\nSome body.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.md"),
		[]byte("---\ntitle: Empty\n---\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"),
		[]byte("ignored"), 0o644))

	docs, warns, err := LoadAll(root)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "costs/pumping", docs[0].Key)

	require.Len(t, warns, 1)
	require.Contains(t, warns[0].Msg, "empty body")
}

func TestLoadAllReadErrorReleasesWorkers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "good.md"),
		[]byte("---\ntitle: Good\n---\nbody\n"), 0o644))
	// 指向不存在目标的软链：发现阶段能看到，读取阶段失败
	require.NoError(t, os.Symlink(filepath.Join(root, "absent"), filepath.Join(root, "broken.md")))

	before := runtime.NumGoroutine()
	_, _, err := LoadAll(root)
	require.Error(t, err)

	// 所有 worker 都要退出，不能留在 results 发送上
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.LessOrEqual(t, runtime.NumGoroutine(), before)
}
