// OpenAI audio backend. Instrumentals are synthesized through the speech
// endpoint from a composed melody line; the same endpoint renders vocals,
// which makes this the only backend implementing the vocals capability.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"benixspace-be/internal/pkg/logger"
	"benixspace-be/pkg/music"
	"benixspace-be/pkg/music/transmit"

	"github.com/google/uuid"
)

const (
	ProviderName   = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	speechModel    = "tts-1"
)

// voiceTable maps the user-facing voice types onto OpenAI voice names.
var voiceTable = map[string]string{
	"male":    "onyx",
	"female":  "nova",
	"deep":    "echo",
	"warm":    "fable",
	"bright":  "shimmer",
	"neutral": "alloy",
}

const defaultVoice = "alloy"

type Provider struct {
	apiKey   string
	baseURL  string
	mediaDir string
	client   *transmit.Client
	logger   logger.ILogger
}

func New(apiKey, baseURL, mediaDir string, log logger.ILogger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		apiKey:   apiKey,
		baseURL:  baseURL,
		mediaDir: mediaDir,
		client:   transmit.New(30*time.Second, 3),
		logger:   log,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func (p *Provider) GenerateInstrumental(ctx context.Context, req music.GenerationRequest) (*music.GenerationResult, error) {
	prompt := composeMelody(req)

	audio, err := p.speech(ctx, prompt, defaultVoice)
	if err != nil {
		return nil, err
	}

	outputID := uuid.New().String()
	beatPath := fmt.Sprintf("/uploads/beats/%s.mp3", outputID)
	finalPath := fmt.Sprintf("/uploads/songs/%s.mp3", outputID)

	if err := p.writeAsset(beatPath, audio); err != nil {
		return nil, err
	}
	if err := p.writeAsset(finalPath, audio); err != nil {
		return nil, err
	}

	return &music.GenerationResult{
		BeatPath:         beatPath,
		InstrumentalPath: beatPath,
		FinalPath:        finalPath,
		Prompt:           prompt,
	}, nil
}

// GenerateVocals renders the lyric line for the requested voice and
// returns the stored vocal track path.
func (p *Provider) GenerateVocals(ctx context.Context, beatPath string, req music.GenerationRequest) (string, error) {
	voice := voiceTable[strings.ToLower(req.VoiceType)]
	if voice == "" {
		voice = defaultVoice
	}

	audio, err := p.speech(ctx, composeLyrics(req), voice)
	if err != nil {
		return "", err
	}

	vocalsPath := fmt.Sprintf("/uploads/vocals/%s.mp3", uuid.New().String())
	if err := p.writeAsset(vocalsPath, audio); err != nil {
		return "", err
	}

	p.logger.Info("MUSIC", "Vocals generated", map[string]interface{}{
		"voice": voice,
		"path":  vocalsPath,
	})
	return vocalsPath, nil
}

func (p *Provider) speech(ctx context.Context, input, voice string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model:          speechModel,
		Input:          input,
		Voice:          voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, err
	}

	return p.client.Post(ctx, p.baseURL+"/audio/speech", body, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"Content-Type":  "application/json",
	})
}

func (p *Provider) writeAsset(webPath string, data []byte) error {
	fullPath := filepath.Join(p.mediaDir, filepath.FromSlash(webPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}

// composeMelody turns the structural parameters into a hummed melody line
// the speech model can render as an instrumental sketch.
func composeMelody(req music.GenerationRequest) string {
	bar := "la la la, da da dum"
	if strings.EqualFold(req.Mood, "sad") || strings.EqualFold(req.Mood, "melancholic") {
		bar = "mmm hmm, ooh ooh"
	}

	sections := req.Verses + req.Choruses
	if sections <= 0 {
		sections = 2
	}
	lines := make([]string, 0, sections)
	for i := 0; i < sections; i++ {
		lines = append(lines, bar)
	}
	return strings.Join(lines, ". ")
}

// composeLyrics builds the sung text from the request structure. Verses
// and choruses alternate the way the structure field describes.
func composeLyrics(req music.GenerationRequest) string {
	mood := req.Mood
	if mood == "" {
		mood = "uplifting"
	}
	genre := req.Genre
	if genre == "" {
		genre = "pop"
	}

	verse := fmt.Sprintf("This is a %s %s song, carrying us along", mood, genre)
	chorus := "Sing it loud, sing it strong, this is where we all belong"

	verses := req.Verses
	if verses <= 0 {
		verses = 1
	}
	choruses := req.Choruses
	if choruses <= 0 {
		choruses = 1
	}

	var lines []string
	for i := 0; i < verses; i++ {
		lines = append(lines, verse)
		if i < choruses {
			lines = append(lines, chorus)
		}
	}
	for i := verses; i < choruses; i++ {
		lines = append(lines, chorus)
	}
	return strings.Join(lines, ". ")
}
