package models

import "time"

// BillingSubscription records the last lifecycle event applied for a provider
// subscription. The newest LastEventAt per store is the recency watermark
// used when out-of-order protection is enabled.
type BillingSubscription struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	StoreID                string    `gorm:"type:char(36);not null;index:idx_billing_subscriptions_store_event,priority:1" json:"store_id"`
	Provider               string    `gorm:"type:varchar(20);not null;index:ux_billing_subscriptions_provider_subid,unique,priority:1" json:"provider"`
	ProviderSubscriptionID string    `gorm:"type:varchar(191);not null;index:ux_billing_subscriptions_provider_subid,unique,priority:2" json:"provider_subscription_id"`
	ProviderPriceID        string    `gorm:"type:varchar(191);not null;default:''" json:"provider_price_id"`
	InternalPlan           string    `gorm:"type:varchar(50);not null;default:'free'" json:"internal_plan"`
	Status                 string    `gorm:"type:varchar(32);not null" json:"status"`
	LastEventID            string    `gorm:"type:varchar(191);not null;default:''" json:"last_event_id"`
	LastEventAt            time.Time `gorm:"type:timestamp;not null;index:idx_billing_subscriptions_store_event,priority:2" json:"last_event_at"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
