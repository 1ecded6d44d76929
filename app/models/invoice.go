package models

import "time"

const (
	InvoiceKindInvoice  = "invoice"
	InvoiceKindProforma = "proforma"
)

// Invoice is a billing document issued by a store. Only the fields needed
// for monthly usage counting are mapped here.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"type:char(36);not null;index:idx_invoices_store_issued,priority:1" json:"store_id"`
	Kind      string    `gorm:"type:varchar(16);not null;default:'invoice'" json:"kind"`
	Number    string    `gorm:"type:varchar(64);not null;default:''" json:"number"`
	IssuedAt  time.Time `gorm:"type:timestamp;not null;index:idx_invoices_store_issued,priority:2" json:"issued_at"`
	CreatedAt time.Time `json:"created_at"`
}
