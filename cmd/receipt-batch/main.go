package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/receipt-interpreter/internal/batch"
	"github.com/joseph-ayodele/receipt-interpreter/internal/core/textparse"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of .txt transcript files to process (required)")
		out       = flag.String("out", "", "output JSON-lines file path (optional, defaults to stdout)")
		workers   = flag.Int("workers", 4, "number of concurrent pipeline workers")
		locale    = flag.String("locale", string(receipt.LocaleNone), "date disambiguation hint: us, intl, or none")
		todayFlag = flag.String("today", "", "fallback date YYYY-MM-DD, defaults to current UTC date")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	today := *todayFlag
	if today == "" {
		today = time.Now().UTC().Format("2006-01-02")
	}

	files, err := findTranscripts(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("scanned directory", "dir", *dir, "files", len(files))

	writer := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("failed to create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		writer = f
	}

	pipeline := textparse.NewPipeline(nil, 0, receipt.LocaleHint(*locale), nil)
	queue := batch.NewQueue(pipeline, logger, batch.WithWorkers(*workers))

	go func() {
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Error("failed to read transcript", "path", path, "error", err)
				continue
			}
			_ = queue.Enqueue(batch.Job{ID: path, Transcript: string(data), Today: today})
		}
		queue.Shutdown(context.Background())
	}()

	enc := json.NewEncoder(writer)
	count, failed := 0, 0
	for result := range queue.Results() {
		if result.Err != nil {
			logger.Error("job failed", "id", result.ID, "error", result.Err)
			failed++
			continue
		}
		if err := enc.Encode(result); err != nil {
			logger.Error("failed to write result", "id", result.ID, "error", err)
			continue
		}
		count++
	}
	logger.Info("batch complete", "processed", count, "failed", failed)
}

func findTranscripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
