// Package music provides a unified interface over multiple AI music
// generation backends, with ordered fallback between them.
package music

// GenerationRequest carries the user-facing generation parameters in a
// provider-agnostic format.
type GenerationRequest struct {
	Genre              string
	Mood               string
	Tempo              int // BPM
	Duration           int // seconds
	Structure          string
	Verses             int
	Choruses           int
	VoiceType          string
	ReferenceVoicePath string
}

// GenerationResult is what a provider hands back. ServiceUsed is stamped
// by the selector, not the provider.
type GenerationResult struct {
	BeatPath         string
	InstrumentalPath string
	VocalsPath       string
	FinalPath        string
	Prompt           string
	ServiceUsed      string
}
