package stability

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benixspace-be/pkg/music"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func writeSampleBeat(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sample-beat.mp3")
	if err := os.WriteFile(path, []byte("sample-audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUnkeyedProviderFallsBackToSample(t *testing.T) {
	mediaDir := t.TempDir()
	sample := writeSampleBeat(t, t.TempDir())

	p := New("", "", mediaDir, sample, testLogger{})
	if p.Available() {
		t.Error("Available() = true without api key")
	}

	result, err := p.GenerateInstrumental(context.Background(), music.GenerationRequest{Genre: "pop"})
	if err != nil {
		t.Fatalf("GenerateInstrumental() error = %v", err)
	}

	beat, err := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(result.BeatPath)))
	if err != nil {
		t.Fatalf("reading beat: %v", err)
	}
	final, err := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(result.FinalPath)))
	if err != nil {
		t.Fatalf("reading final: %v", err)
	}
	if string(beat) != "sample-audio" || string(final) != "sample-audio" {
		t.Error("fallback assets should carry the sample audio bytes")
	}
}

func TestKeyedProviderUsesAPIAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/generation") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["generation_type"] != "music" {
			t.Errorf("generation_type = %v", req["generation_type"])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"artifacts": []map[string]string{
				{"audio": base64.StdEncoding.EncodeToString([]byte("real-audio"))},
			},
		})
	}))
	defer srv.Close()

	mediaDir := t.TempDir()
	p := New("key", srv.URL, mediaDir, "missing-sample.mp3", testLogger{})
	if !p.Available() {
		t.Error("Available() = false with api key")
	}

	result, err := p.GenerateInstrumental(context.Background(), music.GenerationRequest{Genre: "rock", Tempo: 90})
	if err != nil {
		t.Fatalf("GenerateInstrumental() error = %v", err)
	}

	beat, err := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(result.BeatPath)))
	if err != nil {
		t.Fatalf("reading beat: %v", err)
	}
	if string(beat) != "real-audio" {
		t.Errorf("beat bytes = %q, want real-audio", beat)
	}
}

func TestKeyedProviderDegradesOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	mediaDir := t.TempDir()
	sample := writeSampleBeat(t, t.TempDir())

	p := New("bad-key", srv.URL, mediaDir, sample, testLogger{})
	result, err := p.GenerateInstrumental(context.Background(), music.GenerationRequest{})
	if err != nil {
		t.Fatalf("GenerateInstrumental() error = %v, want sample fallback", err)
	}

	beat, _ := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(result.BeatPath)))
	if string(beat) != "sample-audio" {
		t.Errorf("beat bytes = %q, want sample fallback", beat)
	}
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name string
		req  music.GenerationRequest
		want string
	}{
		{
			name: "defaults",
			req:  music.GenerationRequest{},
			want: "An instrumental pop beat",
		},
		{
			name: "full request",
			req:  music.GenerationRequest{Genre: "Jazz", Mood: "Mellow", Tempo: 90, Structure: "verse-chorus"},
			want: "An instrumental jazz beat with a mellow mood at 90 BPM, verse-chorus structure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildPrompt(tt.req); got != tt.want {
				t.Errorf("buildPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}
