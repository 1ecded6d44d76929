package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	db          *gorm.DB
	defaultZone *time.Location
}

// NewInvoiceRepository creates a new invoice repository instance
func NewInvoiceRepository(db *gorm.DB, defaultZone *time.Location) InvoiceRepository {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &invoiceRepository{db: db, defaultZone: defaultZone}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.Kind == "" {
		invoice.Kind = models.InvoiceKindInvoice
	}
	return r.db.WithContext(ctx).Create(invoice).Error
}

// CountBillingDocumentsInMonth counts invoices (not proformas) the store issued
// in the calendar month containing ref, in the store's time zone.
func (r *invoiceRepository) CountBillingDocumentsInMonth(ctx context.Context, storeID string, ref time.Time) (int64, error) {
	storeID = strings.TrimSpace(storeID)

	var store models.StoreProfile
	err := r.db.WithContext(ctx).
		Select("id", "time_zone").
		Where("id = ?", storeID).
		Take(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrStoreNotFound
	}
	if err != nil {
		return 0, err
	}

	window := entitlements.MonthWindow(ref, entitlements.LoadLocation(store.TimeZone, r.defaultZone))

	var count int64
	err = r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("store_id = ? AND kind = ? AND issued_at >= ? AND issued_at < ?",
			storeID, models.InvoiceKindInvoice, window.Start.UTC(), window.End.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
