package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// storeRepository implements the StoreRepository interface
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository instance
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *models.StoreProfile) error {
	store.Plan = string(entitlements.NormalizePlan(store.Plan))
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*models.StoreProfile, error) {
	var store models.StoreProfile
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Take(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetPlan returns the store's plan. Unrecognized stored values read as free.
func (r *storeRepository) GetPlan(ctx context.Context, storeID string) (entitlements.Plan, error) {
	var store models.StoreProfile
	err := r.db.WithContext(ctx).
		Select("id", "plan").
		Where("id = ?", strings.TrimSpace(storeID)).
		Take(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrStoreNotFound
	}
	if err != nil {
		return "", err
	}
	return store.CurrentPlan(), nil
}

// SetPlan overwrites the plan column only, without touching updated_at.
// Writing the current value again is a no-op in effect.
func (r *storeRepository) SetPlan(ctx context.Context, storeID string, plan entitlements.Plan) error {
	if !plan.Valid() {
		return errors.New("invalid plan " + string(plan))
	}
	storeID = strings.TrimSpace(storeID)
	res := r.db.WithContext(ctx).
		Model(&models.StoreProfile{}).
		Where("id = ?", storeID).
		UpdateColumn("plan", string(plan))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the plan is already set.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StoreProfile{}).Where("id = ?", storeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrStoreNotFound
	}
	return nil
}
