/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/refino/internal/orchestrator"
	"github.com/valpere/refino/internal/refiner"
	"github.com/valpere/refino/internal/store"
	"github.com/valpere/refino/internal/terms"
	"github.com/valpere/refino/internal/validator"
)

var (
	inputPaths []string
	outputDir  string

	modelName  string
	ollamaURL  string
	maxWords   int
	chunkMode  string
	maxRetries int
	streaming  bool
	fuzzyTerms bool
	validate   bool

	maxWorkers int

	dbPath  string
	noCache bool
)

var refineCmd = &cobra.Command{
	Use:   "refine [files...]",
	Short: "Refine transcription files with a local Ollama model",
	Long: `Refine one or more UTF-8 transcription files. Each file gets the full
pipeline: dictionary correction, chunking, per-chunk model refinement
with retry and safe fallback, a second correction pass, and in-order
reassembly. Output files are written as refined_<name> in the output
directory.

Chunk modes:
  paragraph  paragraph-aware split merging small paragraphs (default)
  words      plain word-count split at sentence boundaries
  smart      model-proposed break points, falling back to paragraph`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := append(append([]string{}, inputPaths...), args...)
		if len(files) == 0 {
			files = viper.GetStringSlice("input")
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files: pass file paths or --input")
		}
		if outputDir == "" {
			outputDir = viper.GetString("output")
		}
		if outputDir == "" {
			outputDir = "output"
		}

		opts := resolveOptions()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		dict, err := terms.Load()
		if err != nil {
			return fmt.Errorf("failed to load correction dictionary: %w", err)
		}

		var db *store.Store
		if !opts.NoCache && opts.DBPath != "" {
			db, err = store.New(opts.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		var langGuard refiner.LanguageValidator
		if validate {
			langGuard = validator.New()
		}

		probe := refiner.NewOllama(refiner.OllamaConfig{Model: opts.Model, BaseURL: opts.OllamaURL})
		if err := probe.IsAvailable(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; every chunk will fall back to the corrected original\n", err)
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		workers := maxWorkers
		if workers <= 0 {
			workers = viper.GetInt("max_workers")
		}
		if workers <= 0 {
			workers = 1
		}
		showBar := workers == 1 && len(files) == 1

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, file := range files {
			g.Go(func() error {
				return processFile(gctx, file, dict, db, langGuard, opts, showBar)
			})
		}
		return g.Wait()
	},
}

// fileOptions is the resolved per-run configuration shared by every file
// in one invocation.
type fileOptions struct {
	Model         string
	OllamaURL     string
	MaxWords      int
	Mode          orchestrator.ChunkMode
	MaxRetries    int
	Streaming     bool
	Fuzzy         bool
	LossThreshold float64
	DBPath        string
	NoCache       bool
}

// resolveOptions merges flags over viper config values: every flag
// defaults to a zero sentinel, so an unset flag yields to the config key
// and a set flag wins.
func resolveOptions() fileOptions {
	model := modelName
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = "llama3.2:latest"
	}
	url := ollamaURL
	if url == "" {
		url = viper.GetString("ollama_url")
	}
	if url == "" {
		url = "http://localhost:11434"
	}
	words := maxWords
	if words <= 0 {
		words = viper.GetInt("max_words_per_chunk")
	}
	mode := chunkMode
	if mode == "" {
		mode = viper.GetString("chunk_mode")
	}
	if mode == "" {
		mode = string(orchestrator.ModeParagraph)
	}
	retries := maxRetries
	if retries <= 0 {
		retries = viper.GetInt("max_retries")
	}
	stream := streaming || viper.GetBool("streaming")
	if viper.GetBool("no_streaming") {
		stream = false
	}
	db := dbPath
	if db == "" {
		db = viper.GetString("db")
	}
	if db == "" {
		db = "./data/refino.db"
	}
	return fileOptions{
		Model:         model,
		OllamaURL:     url,
		MaxWords:      words,
		Mode:          orchestrator.ChunkMode(mode),
		MaxRetries:    retries,
		Streaming:     stream,
		Fuzzy:         fuzzyTerms || viper.GetBool("fuzzy"),
		LossThreshold: viper.GetFloat64("global_loss_threshold"),
		DBPath:        db,
		NoCache:       noCache || viper.GetBool("no_cache"),
	}
}

func processFile(ctx context.Context, inputFile string, dict *terms.Dictionary, db *store.Store, langGuard refiner.LanguageValidator, opts fileOptions, showBar bool) error {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	outputFile := filepath.Join(outputDir, "refined_"+filepath.Base(inputFile))
	fmt.Fprintf(os.Stderr, "Processing %s -> %s\n", inputFile, outputFile)

	var cache refiner.Cache
	if db != nil {
		cache = db
	}

	ref := refiner.NewOllama(refiner.OllamaConfig{
		Model:      opts.Model,
		BaseURL:    opts.OllamaURL,
		MaxRetries: opts.MaxRetries,
		Streaming:  opts.Streaming,
		Validator:  langGuard,
		Cache:      cache,
	})

	pipelineOpts := orchestrator.Options{
		TargetWords:         opts.MaxWords,
		Mode:                opts.Mode,
		Fuzzy:               opts.Fuzzy,
		GlobalLossThreshold: opts.LossThreshold,
	}

	var bar *chunkBar
	if showBar {
		bar = newChunkBar()
		pipelineOpts.OnChunk = bar.update
	}

	pipe := orchestrator.New(dict, ref, pipelineOpts)

	start := time.Now()
	final, stats, err := pipe.Process(ctx, string(raw))
	if bar != nil {
		bar.finish()
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to process %s: %w", inputFile, err)
	}
	cancelled := err != nil

	// Output bytes are the exact UTF-8 of the final text: no BOM, no
	// re-encoding.
	if err := os.WriteFile(outputFile, []byte(final), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	printSummary(inputFile, stats)

	if db != nil {
		_, saveErr := db.SaveRun(ctx, store.RunRecord{
			InputFile:   inputFile,
			OutputFile:  outputFile,
			Model:       opts.Model,
			Chunks:      stats.Chunks,
			Corrections: stats.Corrections,
			Fallbacks:   stats.Fallbacks,
			InputChars:  stats.InputChars,
			OutputChars: stats.OutputChars,
			Degraded:    stats.Degraded,
			Incomplete:  stats.Incomplete,
			ElapsedMs:   time.Since(start).Milliseconds(),
		})
		if saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", saveErr)
		}
	}

	if cancelled {
		fmt.Fprintf(os.Stderr, "Warning: %s was interrupted; partial output written\n", inputFile)
	}
	return nil
}

func printSummary(inputFile string, stats *orchestrator.Stats) {
	fmt.Printf("%s: %d chunks, %d corrections, %d fallbacks, %d cache hits (%s, %s)\n",
		filepath.Base(inputFile), stats.Chunks, stats.Corrections, stats.Fallbacks,
		stats.CacheHits, stats.Style, stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("  characters: %d in, %d out\n", stats.InputChars, stats.OutputChars)
	if stats.Degraded {
		fmt.Printf("  WARNING: output lost more than half of the input content\n")
	}
	if stats.Incomplete {
		fmt.Printf("  WARNING: run incomplete (cancelled between chunks)\n")
	}
}

func init() {
	rootCmd.AddCommand(refineCmd)

	refineCmd.Flags().StringSliceVarP(&inputPaths, "input", "i", nil, "Input file(s) to refine")
	refineCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config or ./output)")

	refineCmd.Flags().StringVarP(&modelName, "model", "m", "", "Ollama model name (default from config or llama3.2:latest)")
	refineCmd.Flags().StringVar(&ollamaURL, "ollama-url", "", "Ollama base URL (default from config or http://localhost:11434)")
	refineCmd.Flags().IntVar(&maxWords, "max-words", 0, "Chunk size budget in words (default from config or 800)")
	refineCmd.Flags().StringVar(&chunkMode, "chunk-mode", "", "Chunking mode: paragraph, words, or smart (default from config or paragraph)")
	refineCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Total attempts per chunk including the first; 1 means no retries (default from config or 3)")
	refineCmd.Flags().BoolVar(&streaming, "streaming", false, "Stream model responses (progress feedback only)")
	refineCmd.Flags().BoolVar(&fuzzyTerms, "fuzzy", false, "Enable phonetic fuzzy matching of philosophical terms")
	refineCmd.Flags().BoolVar(&validate, "validate-language", true, "Reject refined chunks that drift out of Portuguese")

	refineCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Parallel file pipelines; chunks within a file stay sequential (default from config or 1)")

	refineCmd.Flags().StringVar(&dbPath, "db", "", "Database path for the refinement cache (default from config or ./data/refino.db)")
	refineCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the refinement cache")
}
