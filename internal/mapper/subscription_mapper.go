package mapper

import (
	"benixspace-be/internal/entity"
	"benixspace-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		ID:            s.ID,
		UserID:        s.UserID,
		Plan:          entity.PlanID(s.Plan),
		Amount:        s.Amount,
		TransactionID: s.TransactionID,
		StartedAt:     s.StartedAt,
		ExpiresAt:     s.ExpiresAt,
		CreatedAt:     s.CreatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		ID:            s.ID,
		UserID:        s.UserID,
		Plan:          string(s.Plan),
		Amount:        s.Amount,
		TransactionID: s.TransactionID,
		StartedAt:     s.StartedAt,
		ExpiresAt:     s.ExpiresAt,
		CreatedAt:     s.CreatedAt,
	}
}

func (m *SubscriptionMapper) UsageToEntity(u *model.SongUsage) *entity.UsageRecord {
	if u == nil {
		return nil
	}
	return &entity.UsageRecord{
		ID:        u.ID,
		UserID:    u.UserID,
		SongType:  u.SongType,
		CreatedAt: u.CreatedAt,
	}
}

func (m *SubscriptionMapper) UsageToModel(u *entity.UsageRecord) *model.SongUsage {
	if u == nil {
		return nil
	}
	return &model.SongUsage{
		ID:        u.ID,
		UserID:    u.UserID,
		SongType:  u.SongType,
		CreatedAt: u.CreatedAt,
	}
}
