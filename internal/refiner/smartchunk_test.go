package refiner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseBreakpoints(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wordCount int
		want      []int
		wantErr   bool
	}{
		{
			name:      "bare array",
			raw:       "[120, 245, 377]",
			wordCount: 500,
			want:      []int{120, 245, 377},
		},
		{
			name:      "array inside prose",
			raw:       "Os pontos de quebra são: [10, 20] conforme pedido.",
			wordCount: 30,
			want:      []int{10, 20},
		},
		{
			name:      "no array",
			raw:       "Não consegui identificar os pontos.",
			wordCount: 100,
			wantErr:   true,
		},
		{
			name:      "malformed array",
			raw:       "[10, vinte, 30]",
			wordCount: 100,
			wantErr:   true,
		},
		{
			name:      "out of range index",
			raw:       "[10, 200]",
			wordCount: 100,
			wantErr:   true,
		},
		{
			name:      "zero index rejected",
			raw:       "[0, 10]",
			wordCount: 100,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBreakpoints(tt.raw, tt.wordCount)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestProposeBreakpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Prompt, "array JSON") {
			t.Error("expected the break-point prompt")
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: "[3, 6]", Done: true})
	}))
	defer server.Close()

	o := NewOllama(OllamaConfig{Model: "llama3.2", BaseURL: server.URL})

	text := strings.TrimSpace(strings.Repeat("palavra ", 10))
	breaks, err := o.ProposeBreakpoints(context.Background(), text, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breaks) != 2 || breaks[0] != 3 || breaks[1] != 6 {
		t.Errorf("got %v, want [3 6]", breaks)
	}
}

func TestProposeBreakpoints_EmptyText(t *testing.T) {
	o := NewOllama(OllamaConfig{Model: "llama3.2"})
	if _, err := o.ProposeBreakpoints(context.Background(), "  ", 100); err == nil {
		t.Error("expected error for empty text")
	}
}

