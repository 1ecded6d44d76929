package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

func TestRepository_ResolveStoreID(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `billing_customers` WHERE provider = \\? AND provider_customer_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "store_id", "provider", "provider_customer_id"}).
			AddRow(1, "store-1", "stripe", "cus_1"))

	storeID, ok, err := repo.ResolveStoreID(context.Background(), " cus_1 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "store-1", storeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResolveStoreID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `billing_customers`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "store_id"}))

	_, ok, err := repo.ResolveStoreID(context.Background(), "cus_missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.ResolveStoreID(context.Background(), "  ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResolveStoreID_Error(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `billing_customers`").WillReturnError(errors.New("connection reset"))

	_, _, err := repo.ResolveStoreID(context.Background(), "cus_1")
	assert.Error(t, err)
}

func TestRepository_ResolvePlan(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		wantPlan entitlements.Plan
		wantOK   bool
	}{
		{
			name:     "mapped",
			rows:     sqlmock.NewRows([]string{"id", "provider_price_id", "internal_plan", "is_active"}).AddRow(1, "price_pro", "Pro", true),
			wantPlan: entitlements.PlanPro,
			wantOK:   true,
		},
		{
			name: "unmapped",
			rows: sqlmock.NewRows([]string{"id", "provider_price_id", "internal_plan", "is_active"}),
		},
		{
			name: "unknown plan name",
			rows: sqlmock.NewRows([]string{"id", "provider_price_id", "internal_plan", "is_active"}).AddRow(1, "price_x", "platinum", true),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery("SELECT \\* FROM `billing_plan_mappings` WHERE provider = \\? AND provider_price_id = \\? AND is_active = \\?").
				WillReturnRows(tt.rows)

			plan, ok, err := repo.ResolvePlan(context.Background(), "price_pro")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPlan, plan)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Admit(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		rows      *sqlmock.Rows
		occurred  time.Time
		wantAdmit bool
	}{
		{name: "no history", rows: sqlmock.NewRows([]string{"id", "last_event_at"}), occurred: watermark, wantAdmit: true},
		{name: "newer", rows: sqlmock.NewRows([]string{"id", "last_event_at"}).AddRow(1, watermark), occurred: watermark.Add(time.Second), wantAdmit: true},
		{name: "same time", rows: sqlmock.NewRows([]string{"id", "last_event_at"}).AddRow(1, watermark), occurred: watermark, wantAdmit: true},
		{name: "older", rows: sqlmock.NewRows([]string{"id", "last_event_at"}).AddRow(1, watermark), occurred: watermark.Add(-time.Second), wantAdmit: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery("SELECT \\* FROM `billing_subscriptions` WHERE store_id = \\? ORDER BY last_event_at DESC").
				WillReturnRows(tt.rows)

			admit, err := repo.Admit(context.Background(), "store-1", LifecycleEvent{OccurredAt: tt.occurred})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdmit, admit)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_RecordUpserts(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `billing_subscriptions` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ev := LifecycleEvent{
		EventID:        "evt_1",
		SubscriptionID: "sub_1",
		PriceID:        "price_pro",
		Status:         StatusActive,
		OccurredAt:     time.Now(),
	}
	require.NoError(t, repo.Record(context.Background(), "store-1", ev, entitlements.PlanPro))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MapPrice(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `billing_plan_mappings` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.MapPrice(context.Background(), "price_basic", "BASIC"))
	assert.Error(t, repo.MapPrice(context.Background(), "price_basic", "gold"))
	assert.Error(t, repo.MapPrice(context.Background(), "", "basic"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LinkCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `billing_customers` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.LinkCustomer(context.Background(), "store-1", "cus_1", "owner@example.com"))
	assert.Error(t, repo.LinkCustomer(context.Background(), "", "cus_1", ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}
