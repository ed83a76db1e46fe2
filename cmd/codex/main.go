package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"book-codex/internal/config"
	"book-codex/internal/database"
	"book-codex/internal/pipeline"
	"book-codex/internal/translator"
)

func main() {
	// Parse command line flags
	pdfPath := flag.String("pdf", "", "Path to the source PDF (overrides CODEX_SOURCE_PDF)")
	model := flag.String("model", "", "Ollama model for translation (overrides CODEX_MODEL)")
	flag.Usage = usage
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *model != "" {
		cfg.Model = *model
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	source := cfg.SourcePDF
	if *pdfPath != "" {
		source = *pdfPath
	}

	ctx := context.Background()
	p := pipeline.New(cfg, translator.NewOllamaTranslator(cfg.Model))

	// Connect the optional chapter archive
	if cfg.PostgresURL != "" {
		db, err := database.NewDB(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to connect to chapter archive: %v", err)
		}
		defer db.Close()
		if err := db.Initialize(ctx); err != nil {
			log.Fatalf("Failed to initialize chapter archive: %v", err)
		}
		p.Archive = db
	}

	startTime := time.Now()
	switch command {
	case "extract":
		_, err = p.RunExtract(ctx, source)
	case "translate":
		_, err = p.RunTranslate(ctx)
	case "keywords":
		_, err = p.RunKeywords(ctx)
	case "render":
		err = p.RunRender(ctx)
	case "all":
		err = p.RunAll(ctx, source)
	default:
		log.Fatalf("Unknown command: %s", command)
	}
	if err != nil {
		log.Fatalf("Stage %q failed: %v", command, err)
	}

	log.Printf("Stage %q completed in %v", command, time.Since(startTime).Round(time.Millisecond))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: codex [flags] <extract|translate|keywords|render|all>\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
