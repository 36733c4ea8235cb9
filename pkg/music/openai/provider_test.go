package openai

import (
	"context"
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

func newSpeechServer(t *testing.T, gotVoice *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req speechRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != speechModel {
			t.Errorf("model = %q, want %q", req.Model, speechModel)
		}
		if gotVoice != nil {
			*gotVoice = req.Voice
		}
		w.Write([]byte("mp3-bytes"))
	}))
}

func TestGenerateVocalsMapsVoiceType(t *testing.T) {
	tests := []struct {
		voiceType string
		want      string
	}{
		{"female", "nova"},
		{"male", "onyx"},
		{"FEMALE", "nova"},
		{"", "alloy"},
		{"robot", "alloy"},
	}

	for _, tt := range tests {
		t.Run(tt.voiceType, func(t *testing.T) {
			var gotVoice string
			srv := newSpeechServer(t, &gotVoice)
			defer srv.Close()

			mediaDir := t.TempDir()
			p := New("key", srv.URL, mediaDir, testLogger{})

			path, err := p.GenerateVocals(context.Background(), "/uploads/beats/b.mp3", music.GenerationRequest{
				VoiceType: tt.voiceType,
			})
			if err != nil {
				t.Fatalf("GenerateVocals() error = %v", err)
			}
			if gotVoice != tt.want {
				t.Errorf("voice = %q, want %q", gotVoice, tt.want)
			}

			data, err := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(path)))
			if err != nil {
				t.Fatalf("reading vocals: %v", err)
			}
			if string(data) != "mp3-bytes" {
				t.Errorf("vocals bytes = %q", data)
			}
		})
	}
}

func TestGenerateInstrumentalWritesBeatAndFinal(t *testing.T) {
	srv := newSpeechServer(t, nil)
	defer srv.Close()

	mediaDir := t.TempDir()
	p := New("key", srv.URL, mediaDir, testLogger{})

	result, err := p.GenerateInstrumental(context.Background(), music.GenerationRequest{Genre: "pop"})
	if err != nil {
		t.Fatalf("GenerateInstrumental() error = %v", err)
	}
	for _, webPath := range []string{result.BeatPath, result.FinalPath} {
		if _, err := os.Stat(filepath.Join(mediaDir, filepath.FromSlash(webPath))); err != nil {
			t.Errorf("asset %q not written: %v", webPath, err)
		}
	}
}

func TestComposeLyricsStructure(t *testing.T) {
	lyrics := composeLyrics(music.GenerationRequest{Genre: "rock", Mood: "happy", Verses: 2, Choruses: 2})

	if got := strings.Count(lyrics, "happy rock song"); got != 2 {
		t.Errorf("verse count = %d, want 2", got)
	}
	if got := strings.Count(lyrics, "Sing it loud"); got != 2 {
		t.Errorf("chorus count = %d, want 2", got)
	}
}

func TestComposeLyricsDefaults(t *testing.T) {
	lyrics := composeLyrics(music.GenerationRequest{})
	if !strings.Contains(lyrics, "uplifting pop song") {
		t.Errorf("lyrics = %q, want defaults applied", lyrics)
	}
}
