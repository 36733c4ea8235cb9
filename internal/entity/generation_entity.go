package entity

import "time"

// MusicGeneration is the persisted outcome of one generation run: the
// asset paths produced by the provider plus the structural parameters the
// user asked for.
type MusicGeneration struct {
	ID                uint
	UserID            uint
	OriginalVoicePath string
	InstrumentalPath  string
	BeatPath          string
	VocalsPath        string
	ChorusPath        string
	FinalSongPath     string
	SongStructure     string
	NumVerses         int
	HasBridge         bool
	HasChorus         bool
	BPM               int
	ServiceUsed       string
	CreatedAt         time.Time
}
