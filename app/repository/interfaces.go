package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// ErrStoreNotFound is returned when a store id has no store profile.
var ErrStoreNotFound = entitlements.ErrStoreNotFound

// StoreRepository defines the interface for store profile operations. Plan
// writes are reserved for billing reconciliation.
type StoreRepository interface {
	Create(ctx context.Context, store *models.StoreProfile) error
	GetByID(ctx context.Context, id string) (*models.StoreProfile, error)
	GetPlan(ctx context.Context, storeID string) (entitlements.Plan, error)
	SetPlan(ctx context.Context, storeID string, plan entitlements.Plan) error
}

// InvoiceRepository defines the interface for billing document operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	CountBillingDocumentsInMonth(ctx context.Context, storeID string, ref time.Time) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Store   StoreRepository
	Invoice InvoiceRepository
}

// NewRepositories creates a new instance of all repositories. defaultZone is
// the usage window zone for stores without their own.
func NewRepositories(db *gorm.DB, defaultZone *time.Location) *Repositories {
	return &Repositories{
		Store:   NewStoreRepository(db),
		Invoice: NewInvoiceRepository(db, defaultZone),
	}
}
