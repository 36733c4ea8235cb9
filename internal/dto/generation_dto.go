package dto

import (
	"errors"
	"time"
)

// ErrGenerationNotFound is returned when a generation id does not exist
// or belongs to another user.
var ErrGenerationNotFound = errors.New("music generation not found")

// GenerateMusicRequest is the payload for POST /api/music/generate. The
// audio itself is uploaded separately; AudioPath references the stored
// voice recording.
type GenerateMusicRequest struct {
	AudioPath     string `json:"audioPath"`
	Genre         string `json:"genre"`
	Tempo         int    `json:"tempo"`
	Mood          string `json:"mood"`
	Duration      int    `json:"duration"`
	Structure     string `json:"structure"`
	Verses        int    `json:"verses"`
	Choruses      int    `json:"choruses"`
	VoiceType     string `json:"voiceType"`
	IncludeVocals *bool  `json:"includeVocals"`
	Service       string `json:"service"` // preferred provider, optional
}

type GenerateMusicResponse struct {
	GenerationID uint                 `json:"generation_id"`
	BeatPath     string               `json:"beat_path"`
	VocalsPath   string               `json:"vocals_path,omitempty"`
	FinalPath    string               `json:"final_path"`
	ServiceUsed  string               `json:"service_used"`
	Components   GenerationComponents `json:"components"`
}

type GenerationComponents struct {
	Beat   string `json:"beat"`
	Vocals string `json:"vocals,omitempty"`
	Full   string `json:"full"`
}

type MusicGenerationResponse struct {
	ID            uint      `json:"id"`
	BeatPath      string    `json:"beat_path"`
	VocalsPath    string    `json:"vocals_path,omitempty"`
	FinalSongPath string    `json:"final_song_path"`
	SongStructure string    `json:"song_structure"`
	BPM           int       `json:"bpm"`
	ServiceUsed   string    `json:"service_used"`
	CreatedAt     time.Time `json:"created_at"`
}
