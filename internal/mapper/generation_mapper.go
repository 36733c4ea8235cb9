package mapper

import (
	"benixspace-be/internal/entity"
	"benixspace-be/internal/model"
)

type GenerationMapper struct{}

func NewGenerationMapper() *GenerationMapper {
	return &GenerationMapper{}
}

func (m *GenerationMapper) ToEntity(g *model.MusicGeneration) *entity.MusicGeneration {
	if g == nil {
		return nil
	}
	return &entity.MusicGeneration{
		ID:                g.ID,
		UserID:            g.UserID,
		OriginalVoicePath: g.OriginalVoicePath,
		InstrumentalPath:  g.InstrumentalPath,
		BeatPath:          g.BeatPath,
		VocalsPath:        g.VocalsPath,
		ChorusPath:        g.ChorusPath,
		FinalSongPath:     g.FinalSongPath,
		SongStructure:     g.SongStructure,
		NumVerses:         g.NumVerses,
		HasBridge:         g.HasBridge,
		HasChorus:         g.HasChorus,
		BPM:               g.BPM,
		ServiceUsed:       g.ServiceUsed,
		CreatedAt:         g.CreatedAt,
	}
}

func (m *GenerationMapper) ToModel(g *entity.MusicGeneration) *model.MusicGeneration {
	if g == nil {
		return nil
	}
	return &model.MusicGeneration{
		ID:                g.ID,
		UserID:            g.UserID,
		OriginalVoicePath: g.OriginalVoicePath,
		InstrumentalPath:  g.InstrumentalPath,
		BeatPath:          g.BeatPath,
		VocalsPath:        g.VocalsPath,
		ChorusPath:        g.ChorusPath,
		FinalSongPath:     g.FinalSongPath,
		SongStructure:     g.SongStructure,
		NumVerses:         g.NumVerses,
		HasBridge:         g.HasBridge,
		HasChorus:         g.HasChorus,
		BPM:               g.BPM,
		ServiceUsed:       g.ServiceUsed,
		CreatedAt:         g.CreatedAt,
	}
}
