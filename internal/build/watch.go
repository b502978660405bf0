package build

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lubosik/miamisepticpros/internal/domain/config"
)

// Watch 盯着内容目录和注册表目录，变更后去抖重建。
// 重建失败只记日志不退出：改到一半的文件很常见。
func Watch(ctx context.Context, cfg config.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range []string{cfg.Content.SourceDir, cfg.Content.RegistryDir} {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	runOnce := func() {
		b := &Builder{Cfg: cfg}
		res, err := b.Run(ctx)
		if err != nil {
			log.Printf("[watch] build error: %v", err)
			if res != nil && !res.Report.OK() {
				log.Print(res.Report.Render())
			}
			return
		}
		for _, warn := range res.Warnings {
			log.Printf("[warn] %s: %s", warn.Path, warn.Msg)
		}
		log.Printf("[watch] build complete: %d articles (%d unchanged)", res.Articles, res.Skipped)
	}

	runOnce()

	log.Printf("[watch] watching for file changes ...")

	// Timer 只触发一次：一阵连续事件合并成一次重建，之后保持安静
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[warn] watcher error: %v", err)
		case <-debounce.C:
			runOnce()
		}
	}
}
