package service

import (
	"context"
	"sort"
	"time"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/repository/contract"
	"benixspace-be/internal/repository/specification"
	"benixspace-be/internal/repository/unitofwork"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeStore is an in-memory unit of work. It doubles as its own factory
// so state survives across service calls within a test.
type fakeStore struct {
	users    *fakeUserRepo
	subs     *fakeSubscriptionRepo
	usage    *fakeUsageRepo
	gens     *fakeGenerationRepo
	settings *fakeSettingsRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    &fakeUserRepo{},
		subs:     &fakeSubscriptionRepo{},
		usage:    &fakeUsageRepo{},
		gens:     &fakeGenerationRepo{},
		settings: &fakeSettingsRepo{values: map[string]string{}},
	}
}

func (f *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f }

func (f *fakeStore) Begin(ctx context.Context) error { return nil }
func (f *fakeStore) Commit() error                   { return nil }
func (f *fakeStore) Rollback() error                 { return nil }

func (f *fakeStore) UserRepository() contract.UserRepository                 { return f.users }
func (f *fakeStore) SubscriptionRepository() contract.SubscriptionRepository { return f.subs }
func (f *fakeStore) UsageRepository() contract.UsageRepository               { return f.usage }
func (f *fakeStore) GenerationRepository() contract.GenerationRepository     { return f.gens }
func (f *fakeStore) AdminSettingRepository() contract.AdminSettingRepository { return f.settings }

// matches applies the subset of specifications the fakes understand.
func matchesUser(specs []specification.Specification, userID uint) bool {
	for _, s := range specs {
		if owned, ok := s.(specification.UserOwnedBy); ok && owned.UserID != userID {
			return false
		}
	}
	return true
}

func matchesID(specs []specification.Specification, id uint) bool {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok && byID.ID != id {
			return false
		}
	}
	return true
}

type fakeUserRepo struct {
	rows   []*entity.User
	nextID uint
	err    error
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if r.err != nil {
		return r.err
	}
	for i, row := range r.rows {
		if row.ID == user.ID {
			clone := *user
			r.rows[i] = &clone
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if matchesID(specs, row.ID) {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if row.Email == email {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.rows)), nil
}

type fakeSubscriptionRepo struct {
	rows   []*entity.Subscription
	nextID uint
	err    error
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	sub.ID = r.nextID
	clone := *sub
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	if r.err != nil {
		return r.err
	}
	for i, row := range r.rows {
		if row.ID == sub.ID {
			clone := *sub
			r.rows[i] = &clone
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if matchesID(specs, row.ID) && matchesUser(specs, row.UserID) {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*entity.Subscription, 0)
	for _, row := range r.rows {
		if matchesID(specs, row.ID) && matchesUser(specs, row.UserID) {
			clone := *row
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeSubscriptionRepo) FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*entity.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	var best *entity.Subscription
	for _, row := range r.rows {
		if row.UserID != userID || !row.ExpiresAt.After(now) {
			continue
		}
		if best == nil || row.ID > best.ID {
			best = row
		}
	}
	if best == nil {
		return nil, nil
	}
	clone := *best
	return &clone, nil
}

func (r *fakeSubscriptionRepo) HasUsedTrial(ctx context.Context, userID uint) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, row := range r.rows {
		if row.UserID == userID && row.Plan == entity.PlanTrial {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubscriptionRepo) CountActiveByPlan(ctx context.Context, plan entity.PlanID, now time.Time) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, row := range r.rows {
		if row.Plan == plan && row.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) TotalRevenue(ctx context.Context) (float64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var total float64
	for _, row := range r.rows {
		total += row.Amount
	}
	return total, nil
}

type fakeUsageRepo struct {
	rows   []*entity.UsageRecord
	nextID uint
	err    error
}

func (r *fakeUsageRepo) Append(ctx context.Context, rec *entity.UsageRecord) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	rec.ID = r.nextID
	clone := *rec
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeUsageRepo) CountBetween(ctx context.Context, userID uint, from, to time.Time) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if !row.CreatedAt.Before(from) && row.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeGenerationRepo struct {
	rows   []*entity.MusicGeneration
	nextID uint
	err    error
}

func (r *fakeGenerationRepo) Create(ctx context.Context, gen *entity.MusicGeneration) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	gen.ID = r.nextID
	clone := *gen
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeGenerationRepo) Delete(ctx context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeGenerationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MusicGeneration, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if matchesID(specs, row.ID) && matchesUser(specs, row.UserID) {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeGenerationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MusicGeneration, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*entity.MusicGeneration, 0)
	for _, row := range r.rows {
		if matchesUser(specs, row.UserID) {
			clone := *row
			result = append(result, &clone)
		}
	}

	for _, s := range specs {
		if order, ok := s.(specification.OrderBy); ok && order.Field == "created_at" && order.Desc {
			sort.Slice(result, func(i, j int) bool {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			})
		}
	}
	for _, s := range specs {
		if page, ok := s.(specification.Pagination); ok {
			if page.Offset >= len(result) {
				return []*entity.MusicGeneration{}, nil
			}
			result = result[page.Offset:]
			if page.Limit > 0 && page.Limit < len(result) {
				result = result[:page.Limit]
			}
		}
	}
	return result, nil
}

func (r *fakeGenerationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.rows)), nil
}

type fakeSettingsRepo struct {
	values map[string]string
	err    error
}

func (r *fakeSettingsRepo) Get(ctx context.Context, key string) (*entity.AdminSetting, error) {
	if r.err != nil {
		return nil, r.err
	}
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.AdminSetting{Key: key, Value: value}, nil
}

func (r *fakeSettingsRepo) GetAll(ctx context.Context) ([]*entity.AdminSetting, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*entity.AdminSetting, 0, len(r.values))
	for key, value := range r.values {
		result = append(result, &entity.AdminSetting{Key: key, Value: value})
	}
	return result, nil
}

func (r *fakeSettingsRepo) Set(ctx context.Context, key, value string) error {
	if r.err != nil {
		return r.err
	}
	r.values[key] = value
	return nil
}
