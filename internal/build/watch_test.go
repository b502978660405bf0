package build

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchRebuildsOncePerChange(t *testing.T) {
	cfg := testWorkspace(t)

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, cfg) }()

	// 等初始构建完成再改文件
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Content.SourceDir, "pumping-cost.md"),
		[]byte(testDoc+"\nAdditional paragraph.\n"), 0o644))

	// 一次变更只能触发一次去抖重建，之后不能再自发重建
	time.Sleep(1500 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.Equal(t, 2, strings.Count(buf.String(), "build complete"))
}
