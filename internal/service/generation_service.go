// Service for the music generation pipeline: entitlement gate, provider
// fallback, asset persistence, usage accounting.
package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/entity"
	pkgevents "benixspace-be/internal/pkg/events"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/specification"
	"benixspace-be/internal/repository/unitofwork"
	"benixspace-be/pkg/music"
)

// MusicSelector is the provider fallback surface the service depends on.
// *music.Selector satisfies it.
type MusicSelector interface {
	GenerateMusic(ctx context.Context, req music.GenerationRequest, preferred string) (*music.GenerationResult, error)
	GenerateVocals(ctx context.Context, beatPath string, req music.GenerationRequest) (string, error)
}

type GenerationService interface {
	// Generate runs the full pipeline. Business refusals come back as
	// dto.ErrNoActiveSubscription or *dto.QuotaExceededError; anything
	// else is an infrastructure failure.
	Generate(ctx context.Context, userID uint, req *dto.GenerateMusicRequest) (*dto.GenerateMusicResponse, error)

	History(ctx context.Context, userID uint, limit, offset int) ([]*dto.MusicGenerationResponse, error)
	Get(ctx context.Context, userID uint, id uint) (*dto.MusicGenerationResponse, error)
	Delete(ctx context.Context, userID uint, id uint) error
}

type generationService struct {
	uowFactory  unitofwork.RepositoryFactory
	entitlement EntitlementService
	selector    MusicSelector
	publisher   pkgevents.Publisher
	mediaDir    string
	logger      logger.ILogger
	now         func() time.Time
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	entitlement EntitlementService,
	selector MusicSelector,
	publisher pkgevents.Publisher,
	mediaDir string,
	log logger.ILogger,
) GenerationService {
	return &generationService{
		uowFactory:  uowFactory,
		entitlement: entitlement,
		selector:    selector,
		publisher:   publisher,
		mediaDir:    mediaDir,
		logger:      log,
		now:         time.Now,
	}
}

func (s *generationService) Generate(ctx context.Context, userID uint, req *dto.GenerateMusicRequest) (*dto.GenerateMusicResponse, error) {
	now := s.now()

	status, err := s.entitlement.GetStatus(ctx, userID, now)
	if err != nil {
		// Fail closed: an unreadable entitlement never grants access.
		return nil, err
	}
	if !status.Active {
		return nil, dto.ErrNoActiveSubscription
	}
	if !status.SongsLimit.CanUse(status.SongsUsedToday) {
		_, dayEnd := dayWindow(now)
		return nil, &dto.QuotaExceededError{
			Limit:      status.SongsLimit,
			Used:       status.SongsUsedToday,
			ResetAfter: dayEnd,
		}
	}

	mreq := music.GenerationRequest{
		Genre:              req.Genre,
		Mood:               req.Mood,
		Tempo:              req.Tempo,
		Duration:           req.Duration,
		Structure:          req.Structure,
		Verses:             req.Verses,
		Choruses:           req.Choruses,
		VoiceType:          req.VoiceType,
		ReferenceVoicePath: req.AudioPath,
	}

	result, err := s.selector.GenerateMusic(ctx, mreq, req.Service)
	if err != nil {
		return nil, err
	}

	// Vocals are additive: a vocal failure degrades the song to an
	// instrumental instead of failing the whole generation.
	wantVocals := (req.IncludeVocals == nil || *req.IncludeVocals) && status.Features.Vocal
	if wantVocals {
		vocalsPath, vErr := s.selector.GenerateVocals(ctx, result.BeatPath, mreq)
		switch {
		case vErr == nil:
			result.VocalsPath = vocalsPath
		case errors.Is(vErr, music.ErrCapabilityUnavailable):
			s.logger.Warn("GENERATION", "No vocal-capable service available, returning instrumental only", map[string]interface{}{
				"user_id": userID,
			})
		default:
			s.logger.Warn("GENERATION", "Vocal generation failed, returning instrumental only", map[string]interface{}{
				"user_id": userID,
				"error":   vErr.Error(),
			})
		}
	}

	gen := &entity.MusicGeneration{
		UserID:            userID,
		OriginalVoicePath: req.AudioPath,
		InstrumentalPath:  result.InstrumentalPath,
		BeatPath:          result.BeatPath,
		VocalsPath:        result.VocalsPath,
		FinalSongPath:     result.FinalPath,
		SongStructure:     req.Structure,
		NumVerses:         req.Verses,
		HasChorus:         req.Choruses > 0,
		BPM:               req.Tempo,
		ServiceUsed:       result.ServiceUsed,
		CreatedAt:         now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GenerationRepository().Create(ctx, gen); err != nil {
		return nil, err
	}

	// Usage is charged once, only after the generation fully succeeded.
	songType := "instrumental"
	if result.VocalsPath != "" {
		songType = "vocal"
	}
	if err := s.entitlement.RecordUsage(ctx, userID, songType, now); err != nil {
		return nil, err
	}

	s.logger.Info("GENERATION", "Music generated", map[string]interface{}{
		"user_id":      userID,
		"service_used": result.ServiceUsed,
		"has_vocals":   result.VocalsPath != "",
	})

	if s.publisher != nil {
		s.publisher.PublishGenerationCompleted(ctx, userID, gen.ID, result.ServiceUsed, result.VocalsPath != "")
	}

	return &dto.GenerateMusicResponse{
		GenerationID: gen.ID,
		BeatPath:     result.BeatPath,
		VocalsPath:   result.VocalsPath,
		FinalPath:    result.FinalPath,
		ServiceUsed:  result.ServiceUsed,
		Components: dto.GenerationComponents{
			Beat:   result.BeatPath,
			Vocals: result.VocalsPath,
			Full:   result.FinalPath,
		},
	}, nil
}

func (s *generationService) History(ctx context.Context, userID uint, limit, offset int) ([]*dto.MusicGenerationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	gens, err := uow.GenerationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MusicGenerationResponse, 0, len(gens))
	for _, g := range gens {
		result = append(result, toGenerationResponse(g))
	}
	return result, nil
}

func (s *generationService) Get(ctx context.Context, userID uint, id uint) (*dto.MusicGenerationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, dto.ErrGenerationNotFound
	}
	return toGenerationResponse(gen), nil
}

func (s *generationService) Delete(ctx context.Context, userID uint, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return err
	}
	if gen == nil {
		return dto.ErrGenerationNotFound
	}

	// Asset removal is best-effort; the row is authoritative.
	for _, p := range []string{gen.BeatPath, gen.VocalsPath, gen.ChorusPath, gen.FinalSongPath} {
		if p == "" {
			continue
		}
		full := filepath.Join(s.mediaDir, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("GENERATION", "Failed to remove generated asset", map[string]interface{}{
				"path":  full,
				"error": err.Error(),
			})
		}
	}

	return uow.GenerationRepository().Delete(ctx, id)
}

func toGenerationResponse(g *entity.MusicGeneration) *dto.MusicGenerationResponse {
	return &dto.MusicGenerationResponse{
		ID:            g.ID,
		BeatPath:      g.BeatPath,
		VocalsPath:    g.VocalsPath,
		FinalSongPath: g.FinalSongPath,
		SongStructure: g.SongStructure,
		BPM:           g.BPM,
		ServiceUsed:   g.ServiceUsed,
		CreatedAt:     g.CreatedAt,
	}
}
