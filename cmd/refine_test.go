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
	"testing"

	"github.com/spf13/viper"

	"github.com/valpere/refino/internal/orchestrator"
)

// resetOptionSources zeroes the flag variables and viper state so each
// test sees the same unset-flag starting point.
func resetOptionSources(t *testing.T) {
	t.Helper()
	modelName = ""
	ollamaURL = ""
	maxWords = 0
	chunkMode = ""
	maxRetries = 0
	streaming = false
	fuzzyTerms = false
	dbPath = ""
	noCache = false
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestResolveOptions_Defaults(t *testing.T) {
	resetOptionSources(t)

	opts := resolveOptions()
	if opts.Model != "llama3.2:latest" {
		t.Errorf("unexpected default model %q", opts.Model)
	}
	if opts.OllamaURL != "http://localhost:11434" {
		t.Errorf("unexpected default URL %q", opts.OllamaURL)
	}
	if opts.Mode != orchestrator.ModeParagraph {
		t.Errorf("unexpected default mode %q", opts.Mode)
	}
	if opts.DBPath != "./data/refino.db" {
		t.Errorf("unexpected default db path %q", opts.DBPath)
	}
	if opts.NoCache || opts.Streaming || opts.Fuzzy {
		t.Error("boolean options must default to false")
	}
}

func TestResolveOptions_ConfigValuesUsedWhenFlagsUnset(t *testing.T) {
	resetOptionSources(t)

	viper.Set("model", "mistral:7b")
	viper.Set("ollama_url", "http://gpubox:11434")
	viper.Set("max_words_per_chunk", 500)
	viper.Set("chunk_mode", "smart")
	viper.Set("max_retries", 7)
	viper.Set("streaming", true)
	viper.Set("fuzzy", true)
	viper.Set("db", "/var/lib/refino/cache.db")
	viper.Set("no_cache", true)

	opts := resolveOptions()
	if opts.Model != "mistral:7b" {
		t.Errorf("model: got %q", opts.Model)
	}
	if opts.OllamaURL != "http://gpubox:11434" {
		t.Errorf("ollama_url: got %q", opts.OllamaURL)
	}
	if opts.MaxWords != 500 {
		t.Errorf("max_words_per_chunk: got %d", opts.MaxWords)
	}
	if opts.Mode != orchestrator.ModeSmart {
		t.Errorf("chunk_mode: got %q", opts.Mode)
	}
	if opts.MaxRetries != 7 {
		t.Errorf("max_retries: got %d", opts.MaxRetries)
	}
	if !opts.Streaming {
		t.Error("streaming: config value ignored")
	}
	if !opts.Fuzzy {
		t.Error("fuzzy: config value ignored")
	}
	if opts.DBPath != "/var/lib/refino/cache.db" {
		t.Errorf("db: got %q", opts.DBPath)
	}
	if !opts.NoCache {
		t.Error("no_cache: config value ignored")
	}
}

func TestResolveOptions_FlagsWinOverConfig(t *testing.T) {
	resetOptionSources(t)

	viper.Set("model", "mistral:7b")
	viper.Set("ollama_url", "http://gpubox:11434")
	viper.Set("chunk_mode", "smart")
	viper.Set("max_retries", 7)

	modelName = "llama3.2:latest"
	ollamaURL = "http://localhost:11434"
	chunkMode = "words"
	maxRetries = 1

	opts := resolveOptions()
	if opts.Model != "llama3.2:latest" {
		t.Errorf("model flag must win, got %q", opts.Model)
	}
	if opts.OllamaURL != "http://localhost:11434" {
		t.Errorf("ollama-url flag must win, got %q", opts.OllamaURL)
	}
	if opts.Mode != orchestrator.ModeWords {
		t.Errorf("chunk-mode flag must win, got %q", opts.Mode)
	}
	if opts.MaxRetries != 1 {
		t.Errorf("max-retries flag must win, got %d", opts.MaxRetries)
	}
}

func TestResolveOptions_NoStreamingOverrides(t *testing.T) {
	resetOptionSources(t)

	viper.Set("streaming", true)
	viper.Set("no_streaming", true)

	if opts := resolveOptions(); opts.Streaming {
		t.Error("no_streaming must disable streaming")
	}
}
