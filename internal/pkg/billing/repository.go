package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// Repository is the GORM-backed correlation store: customer to store links,
// price to plan mappings and the per-subscription event watermark.
type Repository struct {
	db       *gorm.DB
	provider string
}

// NewRepository creates a billing repository for the Stripe provider.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, provider: models.BillingProviderStripe}
}

func (r *Repository) ResolveStoreID(ctx context.Context, customerID string) (string, bool, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return "", false, nil
	}
	var c models.BillingCustomer
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_customer_id = ?", r.provider, customerID).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.StoreID, c.StoreID != "", nil
}

func (r *Repository) ResolvePlan(ctx context.Context, priceID string) (entitlements.Plan, bool, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return "", false, nil
	}
	var m models.BillingPlanMapping
	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_price_id = ? AND is_active = ?", r.provider, priceID, true).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	plan, ok := entitlements.ParsePlan(m.InternalPlan)
	if !ok {
		log.Warnw("billing: price mapped to unknown plan name, ignoring mapping",
			"price_id", priceID, "internal_plan", m.InternalPlan)
		return "", false, nil
	}
	return plan, true, nil
}

// Admit reports whether ev is at least as new as every event already applied
// to storeID. Events with the same timestamp are admitted.
func (r *Repository) Admit(ctx context.Context, storeID string, ev LifecycleEvent) (bool, error) {
	var latest models.BillingSubscription
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("last_event_at DESC").
		Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !ev.OccurredAt.Before(latest.LastEventAt), nil
}

// Record upserts the subscription row with the event just applied.
func (r *Repository) Record(ctx context.Context, storeID string, ev LifecycleEvent, plan entitlements.Plan) error {
	sub := &models.BillingSubscription{
		StoreID:                storeID,
		Provider:               r.provider,
		ProviderSubscriptionID: strings.TrimSpace(ev.SubscriptionID),
		ProviderPriceID:        strings.TrimSpace(ev.PriceID),
		InternalPlan:           string(plan),
		Status:                 string(ev.Status),
		LastEventID:            ev.EventID,
		LastEventAt:            ev.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_subscription_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"store_id",
			"provider_price_id",
			"internal_plan",
			"status",
			"last_event_id",
			"last_event_at",
			"updated_at",
		}),
	}).Create(sub).Error
}

// LinkCustomer records which store a provider customer pays for.
func (r *Repository) LinkCustomer(ctx context.Context, storeID, customerID, email string) error {
	storeID = strings.TrimSpace(storeID)
	customerID = strings.TrimSpace(customerID)
	if storeID == "" || customerID == "" {
		return errors.New("store_id and customer_id are required")
	}
	c := &models.BillingCustomer{
		StoreID:            storeID,
		Provider:           r.provider,
		ProviderCustomerID: customerID,
		Email:              strings.TrimSpace(email),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_customer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"store_id", "email", "updated_at"}),
	}).Create(c).Error
}

// MapPrice maps a provider price to a plan. Only names from the plan
// enumeration are accepted.
func (r *Repository) MapPrice(ctx context.Context, priceID, planName string) error {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return errors.New("price_id is required")
	}
	plan, ok := entitlements.ParsePlan(planName)
	if !ok {
		return errors.New("unknown plan " + planName)
	}
	m := &models.BillingPlanMapping{
		Provider:        r.provider,
		ProviderPriceID: priceID,
		InternalPlan:    string(plan),
		IsActive:        true,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_price_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"internal_plan", "is_active", "updated_at"}),
	}).Create(m).Error
}
