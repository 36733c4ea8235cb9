package contract

import (
	"context"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/repository/specification"
)

type GenerationRepository interface {
	Create(ctx context.Context, gen *entity.MusicGeneration) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MusicGeneration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MusicGeneration, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
