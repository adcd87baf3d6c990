// Package migration brings the schema up on startup so the service is usable
// out of the box: versioned SQL migrations on postgres, gorm AutoMigrate on
// the sqlite/mysql development targets.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	orderdomain "github.com/montluxe/storefront/internal/order/domain"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

// RunPostgres applies the embedded versioned migrations.
func RunPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates the schema from the models, for engines we do not ship
// versioned migrations for.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&categorydomain.Category{},
		&productdomain.Product{},
		&productdomain.ProductCategory{},
		&userdomain.User{},
		&orderdomain.Order{},
		&orderdomain.OrderDetail{},
	)
}
