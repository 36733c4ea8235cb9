// TuneFlow audio backend. Fully keyed, no fallback of its own; failures
// bubble up so the selector can move to the next candidate.
package tuneflow

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"benixspace-be/internal/pkg/logger"
	"benixspace-be/pkg/music"
	"benixspace-be/pkg/music/transmit"

	"github.com/google/uuid"
)

const (
	ProviderName   = "tuneflow"
	defaultBaseURL = "https://api.tuneflow.com/v1"
)

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

type composeRequest struct {
	Genre    string `json:"genre"`
	Mood     string `json:"mood"`
	BPM      int    `json:"bpm,omitempty"`
	Duration int    `json:"duration_seconds,omitempty"`
}

type composeResponse struct {
	Audio string `json:"audio"` // base64 mp3
}

func (p *Provider) GenerateInstrumental(ctx context.Context, req music.GenerationRequest) (*music.GenerationResult, error) {
	body, err := json.Marshal(composeRequest{
		Genre:    req.Genre,
		Mood:     req.Mood,
		BPM:      req.Tempo,
		Duration: req.Duration,
	})
	if err != nil {
		return nil, err
	}

	data, err := p.client.Post(ctx, p.baseURL+"/compositions", body, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"Content-Type":  "application/json",
	})
	if err != nil {
		return nil, err
	}

	var resp composeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding tuneflow response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.Audio)
	if err != nil {
		return nil, fmt.Errorf("decoding tuneflow audio: %w", err)
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
	}, nil
}

func (p *Provider) writeAsset(webPath string, data []byte) error {
	fullPath := filepath.Join(p.mediaDir, filepath.FromSlash(webPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}
