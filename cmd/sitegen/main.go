package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lubosik/miamisepticpros/internal/build"
	"github.com/lubosik/miamisepticpros/internal/domain/config"
	"github.com/lubosik/miamisepticpros/internal/registry"
)

func main() {
	cfgPath := flag.String("config", "site.yaml", "site config path")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "build"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "validate":
		// 独立跑一致性检查，给 CI 当构建门禁用
		st := registry.Open(cfg.Content.RegistryDir)
		rep := registry.Validate(st)
		fmt.Print(rep.Render())
		if !rep.OK() {
			os.Exit(1)
		}

	case "build":
		b := &build.Builder{Cfg: cfg}
		res, err := b.Run(ctx)
		if res != nil {
			for _, w := range res.Warnings {
				log.Printf("[warn] %s: %s", w.Path, w.Msg)
			}
		}
		if err != nil {
			if errors.Is(err, build.ErrRegistryInvalid) && res != nil {
				fmt.Fprint(os.Stderr, res.Report.Render())
			} else {
				fmt.Fprintln(os.Stderr, "build error:", err.Error())
			}
			os.Exit(1)
		}
		log.Printf("[build] %d articles built, %d unchanged", res.Articles, res.Skipped)

	case "watch":
		if err := build.Watch(ctx, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "watch error:", err.Error())
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "usage: sitegen [-config site.yaml] build|validate|watch\n")
		os.Exit(2)
	}
}
