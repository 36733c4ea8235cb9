// Stability AI audio generation backend. This is also the degrade target
// of last resort: when unkeyed or the API call fails it falls back to a
// bundled sample beat instead of erroring, so the pipeline never returns
// nothing.
package stability

import (
	"context"
	"encoding/base64"
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
	ProviderName   = "stability"
	defaultBaseURL = "https://api.stability.ai/v2beta"
)

type Provider struct {
	apiKey     string
	baseURL    string
	mediaDir   string // filesystem root the web paths resolve under
	samplePath string // bundled fallback beat
	client     *transmit.Client
	logger     logger.ILogger
}

func New(apiKey, baseURL, mediaDir, samplePath string, log logger.ILogger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if apiKey == "" {
		log.Warn("MUSIC", "Stability API key not set, generation will fall back to sample audio", nil)
	}
	return &Provider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		mediaDir:   mediaDir,
		samplePath: samplePath,
		client:     transmit.New(30*time.Second, 3),
		logger:     log,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Available() bool {
	return p.apiKey != ""
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts       []textPrompt `json:"text_prompts"`
	GenerationType    string       `json:"generation_type"`
	DurationInSeconds int          `json:"duration_in_seconds"`
	StylePreset       string       `json:"style_preset"`
}

type generationResponse struct {
	Artifacts []struct {
		Audio string `json:"audio"` // base64
	} `json:"artifacts"`
}

func (p *Provider) GenerateInstrumental(ctx context.Context, req music.GenerationRequest) (*music.GenerationResult, error) {
	prompt := buildPrompt(req)

	outputID := uuid.New().String()
	beatPath := fmt.Sprintf("/uploads/beats/%s.mp3", outputID)
	finalPath := fmt.Sprintf("/uploads/songs/%s.mp3", outputID)

	var audio []byte
	if p.apiKey != "" {
		data, err := p.requestAudio(ctx, prompt, req)
		if err != nil {
			p.logger.Error("MUSIC", "Stability API error, using sample audio", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			audio = data
		}
	}

	if audio == nil {
		sample, err := os.ReadFile(p.samplePath)
		if err != nil {
			p.logger.Warn("MUSIC", "Sample beat missing, writing empty asset", map[string]interface{}{
				"path": p.samplePath,
			})
			sample = []byte{}
		}
		audio = sample
	}

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

func (p *Provider) requestAudio(ctx context.Context, prompt string, req music.GenerationRequest) ([]byte, error) {
	duration := req.Duration
	if duration <= 0 {
		duration = 8
	}
	style := strings.ToLower(req.Genre)
	if style == "" {
		style = "electronic"
	}

	body, err := json.Marshal(generationRequest{
		TextPrompts:       []textPrompt{{Text: prompt, Weight: 1.0}},
		GenerationType:    "music",
		DurationInSeconds: duration,
		StylePreset:       style,
	})
	if err != nil {
		return nil, err
	}

	data, err := p.client.Post(ctx, p.baseURL+"/audio/generation", body, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	})
	if err != nil {
		return nil, err
	}

	var resp generationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding stability response: %w", err)
	}
	if len(resp.Artifacts) == 0 {
		return nil, fmt.Errorf("stability response contained no audio artifacts")
	}

	return base64.StdEncoding.DecodeString(resp.Artifacts[0].Audio)
}

func (p *Provider) writeAsset(webPath string, data []byte) error {
	fullPath := filepath.Join(p.mediaDir, filepath.FromSlash(webPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}

func buildPrompt(req music.GenerationRequest) string {
	var b strings.Builder

	genre := req.Genre
	if genre == "" {
		genre = "pop"
	}
	fmt.Fprintf(&b, "An instrumental %s beat", strings.ToLower(genre))
	if req.Mood != "" {
		fmt.Fprintf(&b, " with a %s mood", strings.ToLower(req.Mood))
	}
	if req.Tempo > 0 {
		fmt.Fprintf(&b, " at %d BPM", req.Tempo)
	}
	if req.Structure != "" {
		fmt.Fprintf(&b, ", %s structure", req.Structure)
	}
	return b.String()
}
