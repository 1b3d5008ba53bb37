package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gahane31/my-animation-sub000/internal/config"
	"github.com/gahane31/my-animation-sub000/internal/engine"
	"github.com/gahane31/my-animation-sub000/internal/preview"
	"github.com/gahane31/my-animation-sub000/internal/schema"
	"github.com/gahane31/my-animation-sub000/internal/source"
	"github.com/gahane31/my-animation-sub000/internal/system"
)

var buildVersion = "dev"

func main() {
	started := time.Now()

	if err := system.EnsureWorkDirs(); err != nil {
		log.Printf("[!] Could not create working directories: %v", err)
	}

	def := config.Default()
	inputPtr := flag.String("input", "", "Scene document or directory of documents (default: newest file in input/scenes/)")
	outputPtr := flag.String("output", "", "Timeline path, or directory for batch input (default: generated in output/)")
	personalityPtr := flag.String("personality", def.Personality, "Motion personality: balanced, calm, energetic, technical")
	pacingPtr := flag.String("pacing", def.Pacing, "Pacing mode: normal, fast_reel")
	templatePtr := flag.String("template", def.DefaultTemplate, "Default layout template for scenes without one")
	configPtr := flag.String("config", "", "YAML config file applied before flags")
	formatPtr := flag.String("format", def.OutputFormat, "Output format: yaml, json")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Documents compiled in parallel")
	statsPtr := flag.Bool("stats", false, "Print process statistics when done")
	schemaPtr := flag.String("schema-out", "", "Write JSON schemas for input and output into this directory")
	servePtr := flag.String("serve", "", "Serve a websocket playback preview on this address (e.g. :8090)")
	noOptPtr := flag.Bool("no-optimize", false, "Disable the crossing optimizer")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		if err := config.LoadFile(cfg, *configPtr); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputPath = *outputPtr
		case "personality":
			cfg.Personality = *personalityPtr
		case "pacing":
			cfg.Pacing = *pacingPtr
		case "template":
			cfg.DefaultTemplate = *templatePtr
		case "format":
			cfg.OutputFormat = *formatPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "schema-out":
			cfg.SchemaDir = *schemaPtr
		case "serve":
			cfg.PreviewAddr = *servePtr
		case "no-optimize":
			cfg.OptimizeCrossings = !*noOptPtr
		}
	})
	cfg.BuildVersion = buildVersion

	if cfg.SchemaDir != "" {
		paths, err := schema.Write(cfg.SchemaDir)
		if err != nil {
			log.Fatalf("[-] Schema error: %v", err)
		}
		for _, p := range paths {
			fmt.Printf("[*] Schema written: %s\n", p)
		}
		if cfg.InputPath == "" {
			return
		}
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatestDocument("input/scenes")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a scene document in input/scenes/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Selected document: %s\n", cfg.InputPath)
	}

	compiler, err := engine.NewCompiler(cfg)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	src, err := source.NewFileSource(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Source error: %v", err)
	}

	timelines := make([]*engine.Timeline, src.Count())
	outputs := make([]string, src.Count())

	g := new(errgroup.Group)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := 0; i < src.Count(); i++ {
		i := i
		g.Go(func() error {
			doc, err := src.Load(i)
			if err != nil {
				return err
			}
			tl, err := compiler.CompileDocument(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path(i), err)
			}
			out := outputPath(cfg, src.Path(i), src.Count() > 1)
			if err := engine.WriteTimeline(tl, out, cfg.OutputFormat); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			timelines[i], outputs[i] = tl, out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[-] Compile error: %v", err)
	}

	for i, tl := range timelines {
		fmt.Printf("[*] %s: %d scenes, %.2fs, %d warnings -> %s\n",
			src.Path(i), len(tl.Scenes), tl.Duration, len(tl.Warnings), outputs[i])
	}

	if cfg.ShowStats {
		st, err := system.CollectStats(started)
		if err != nil {
			log.Printf("[!] Could not collect stats: %v", err)
		}
		fmt.Printf("[*] Stats (%s): %s\n", cfg.BuildVersion, st)
	}

	if cfg.PreviewAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fmt.Printf("[*] Preview on ws://%s/ws (Ctrl+C to stop)\n", cfg.PreviewAddr)
		opts := preview.ReplayOptions{Step: cfg.PlaybackStep, Speed: 1, Pause: 2 * time.Second}
		if err := preview.Serve(ctx, cfg.PreviewAddr, timelines[0], opts); err != nil {
			log.Fatalf("[-] Preview error: %v", err)
		}
	}

	fmt.Printf("[+++] Done!\n")
}

// outputPath picks where a document's timeline goes. Batch runs treat
// cfg.OutputPath as a directory.
func outputPath(cfg *config.Config, input string, batch bool) string {
	ext := engine.FormatExt(cfg.OutputFormat)
	if cfg.OutputPath != "" && !batch {
		return cfg.OutputPath
	}
	dir := "output"
	if cfg.OutputPath != "" {
		dir = cfg.OutputPath
	}
	baseName := filepath.Base(input)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	if batch {
		return filepath.Join(dir, cleanName+".timeline"+ext)
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.timeline%s", cleanName, timestamp, ext))
}
