package ingest

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
)

type Warning struct {
	Path string
	Msg  string
}

type Result struct {
	Doc   Document
	Warns []Warning
	Skip  bool
	Err   error
}

// LoadAll 并发加载 root 下全部源文档。
// 文档之间互不依赖，按 GOMAXPROCS 开 worker 就够了。
func LoadAll(root string) ([]Document, []Warning, error) {
	files, err := DiscoverSource(root)
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan Result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				raw, readErr := os.ReadFile(sf.Path)
				if readErr != nil {
					results <- Result{Err: readErr}
					continue
				}

				var warns []Warning
				fm, body, fmErr := ParseFrontMatter(raw)
				switch {
				case fmErr == nil, errors.Is(fmErr, errNoFrontMatter):
				default:
					warns = append(warns, Warning{
						Path: sf.Path,
						Msg:  "bad front matter, metadata dropped: " + fmErr.Error(),
					})
					fm = FrontMatter{}
				}

				if len(body) == 0 {
					warns = append(warns, Warning{Path: sf.Path, Msg: "empty body"})
					results <- Result{Warns: warns, Skip: true}
					continue
				}
				if fm.Str("title") == "" {
					warns = append(warns, Warning{Path: sf.Path, Msg: "title is empty"})
				}

				ext := strings.ToLower(sf.Path)
				results <- Result{
					Doc: Document{
						Key:         sf.Key,
						Path:        sf.Path,
						FrontMatter: fm,
						Body:        string(body),
						Markdown:    !strings.HasSuffix(ext, ".html") && !strings.HasSuffix(ext, ".htm"),
						ContentHash: HashBytes(raw),
					},
					Warns: warns,
				}
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var out []Document
	var warns []Warning
	var firstErr error
	// 出错也把 channel 收完，worker 不能卡在发送上
	for r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		if len(r.Warns) > 0 {
			warns = append(warns, r.Warns...)
		}
		if r.Skip {
			continue
		}
		out = append(out, r.Doc)
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	// 同一个 key 出现两种格式时保留先到的那份
	seen := make(map[string]struct{}, len(out))
	filtered := make([]Document, 0, len(out))
	for _, d := range out {
		if _, ok := seen[d.Key]; ok {
			warns = append(warns, Warning{Path: d.Path, Msg: "duplicate document key, skipped: " + d.Key})
			continue
		}
		seen[d.Key] = struct{}{}
		filtered = append(filtered, d)
	}
	return filtered, warns, nil
}
