package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestMeanConfidence(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   float64
	}{
		{
			name:   "mean of blocks",
			result: &Result{Blocks: []Block{{Confidence: 0.8}, {Confidence: 0.6}}},
			want:   0.7,
		},
		{
			name:   "no blocks is zero",
			result: &Result{},
			want:   0,
		},
		{
			name:   "nil result is zero",
			result: nil,
			want:   0,
		},
		{
			name:   "clamped to 1",
			result: &Result{Blocks: []Block{{Confidence: 1.5}}},
			want:   1,
		},
		{
			name:   "clamped to 0",
			result: &Result{Blocks: []Block{{Confidence: -0.5}}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.MeanConfidence()
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("MeanConfidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultText(t *testing.T) {
	result := &Result{Blocks: []Block{
		{Text: "John: hi", Confidence: 0.9},
		{Text: "Sarah: hello", Confidence: 0.8},
	}}

	if got := result.Text(); got != "John: hi\nSarah: hello" {
		t.Errorf("Text() = %q", got)
	}

	var nilResult *Result
	if got := nilResult.Text(); got != "" {
		t.Errorf("nil Text() = %q, want empty", got)
	}
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0600); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func TestClientRecognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		var req recognizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Image == "" {
			t.Error("expected base64 image in request")
		}

		json.NewEncoder(w).Encode(recognizeResponse{
			Blocks: []Block{
				{Text: "John: hi", Confidence: 0.95},
				{Text: "Sarah: hello", Confidence: 0.85},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	result, err := client.Recognize(context.Background(), writeTestImage(t))
	if err != nil {
		t.Fatalf("recognize failed: %v", err)
	}

	if len(result.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(result.Blocks))
	}
	if result.Text() != "John: hi\nSarah: hello" {
		t.Errorf("unexpected text: %q", result.Text())
	}
	if mean := result.MeanConfidence(); mean < 0.89 || mean > 0.91 {
		t.Errorf("expected mean confidence 0.9, got %v", mean)
	}
}

func TestClientRecognizeErrors(t *testing.T) {
	t.Run("service error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(recognizeResponse{Error: "unreadable image"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		if _, err := client.Recognize(context.Background(), writeTestImage(t)); err == nil {
			t.Error("expected error from service error payload")
		}
	})

	t.Run("http status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		if _, err := client.Recognize(context.Background(), writeTestImage(t)); err == nil {
			t.Error("expected error from 500 response")
		}
	})

	t.Run("missing endpoint", func(t *testing.T) {
		client := NewClient("", "")
		if _, err := client.Recognize(context.Background(), writeTestImage(t)); err == nil {
			t.Error("expected error for missing endpoint")
		}
	})

	t.Run("missing image file", func(t *testing.T) {
		client := NewClient("http://localhost:1", "")
		if _, err := client.Recognize(context.Background(), "/does/not/exist.png"); err == nil {
			t.Error("expected error for missing image")
		}
	})
}

func TestStaticProvider(t *testing.T) {
	static := &Static{Result: &Result{Blocks: []Block{{Text: "hi", Confidence: 1}}}}

	result, err := static.Recognize(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text() != "hi" {
		t.Errorf("unexpected text: %q", result.Text())
	}
}
