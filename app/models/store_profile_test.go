package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/RetailFox/internal/pkg/entitlements"
)

func TestNewStoreProfileStartsOnFree(t *testing.T) {
	s := NewStoreProfile("  Corner Shop ", "Asia/Kolkata")

	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", s.Name)
	assert.Equal(t, "free", s.Plan)
	assert.Equal(t, "Asia/Kolkata", s.TimeZone)
	assert.Equal(t, entitlements.PlanFree, s.CurrentPlan())
}

func TestStoreProfileCurrentPlan(t *testing.T) {
	assert.Equal(t, entitlements.PlanPro, (&StoreProfile{Plan: "pro"}).CurrentPlan())
	assert.Equal(t, entitlements.PlanFree, (&StoreProfile{Plan: "legacy_gold"}).CurrentPlan())
	assert.Equal(t, entitlements.PlanFree, (&StoreProfile{}).CurrentPlan())
}
