package database

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ManuelReschke/RetailFox/app/models"
	"github.com/ManuelReschke/RetailFox/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// GetDB returns the connection opened by SetupDatabase.
func GetDB() *gorm.DB {
	return DB
}

// Settings holds the DB_* connection settings shared by the service and the
// admin CLI.
type Settings struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func LoadSettings() Settings {
	return Settings{
		User:     env.GetEnv("DB_USER", "retailfox"),
		Password: env.GetEnv("DB_PASSWORD", "retailfox"),
		Host:     env.GetEnv("DB_HOST", "db"),
		Port:     env.GetEnv("DB_PORT", "3306"),
		Name:     env.GetEnv("DB_NAME", "retailfox_db"),
	}
}

// DSN is the go-sql-driver DSN. Times are stored and read as UTC so usage
// windows compare correctly.
func (s Settings) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		s.User, s.Password, s.Host, s.Port, s.Name)
}

// MigrateURL is the golang-migrate database URL for the same server.
func (s Settings) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		s.User, s.Password, s.Host, s.Port, s.Name)
}

func DSN() string {
	return LoadSettings().DSN()
}

// Models lists every table owned by this service.
func Models() []any {
	return []any{
		&models.StoreProfile{},
		&models.Invoice{},
		&models.BillingCustomer{},
		&models.BillingPlanMapping{},
		&models.BillingSubscription{},
	}
}

// SetupDatabase connects the service and, unless DB_AUTO_MIGRATE is false,
// auto-migrates the models.
func SetupDatabase() {
	connect(env.GetEnvBool("DB_AUTO_MIGRATE", true))
}

// ConnectDatabase connects without touching the schema. The admin CLI uses it
// so that golang-migrate stays the only schema writer there.
func ConnectDatabase() {
	connect(false)
}

func connect(autoMigrate bool) {
	var err error
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       DSN(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if err == nil {
			if autoMigrate {
				if err = DB.AutoMigrate(Models()...); err != nil {
					panic(fmt.Errorf("auto migrate: %w", err))
				}
			}
			return
		}

		log.Warnw("failed to connect to database", "attempt", i+1, "max_attempts", maxRetries, "error", err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}
