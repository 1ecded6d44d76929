package repository

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db          *gorm.DB
	defaultZone *time.Location
	repos       *Repositories
	once        sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB, defaultZone *time.Location) *Factory {
	return &Factory{
		db:          db,
		defaultZone: defaultZone,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db, f.defaultZone)
	})
	return f.repos
}

// GetStoreRepository returns the store repository instance
func (f *Factory) GetStoreRepository() StoreRepository {
	return f.GetRepositories().Store
}

// GetInvoiceRepository returns the invoice repository instance
func (f *Factory) GetInvoiceRepository() InvoiceRepository {
	return f.GetRepositories().Invoice
}
