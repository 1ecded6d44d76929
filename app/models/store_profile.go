package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

// StoreProfile is the tenant record. Plan has a single writer: billing
// reconciliation.
type StoreProfile struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Plan      string    `gorm:"type:varchar(50);not null;default:'free'" json:"plan"`
	TimeZone  string    `gorm:"type:varchar(64);not null;default:''" json:"time_zone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreProfile returns a store as created at signup: a fresh id and the
// free plan.
func NewStoreProfile(name, timeZone string) *StoreProfile {
	return &StoreProfile{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Plan:     string(entitlements.PlanFree),
		TimeZone: strings.TrimSpace(timeZone),
	}
}

// CurrentPlan returns the stored plan, treating unrecognized values as free.
func (s *StoreProfile) CurrentPlan() entitlements.Plan {
	return entitlements.NormalizePlan(s.Plan)
}
