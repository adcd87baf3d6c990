// Package seed installs the demo catalog for local development: the two
// launch categories, a handful of watches linked to them, and a demo account.
// Seeding is idempotent and runs as one transaction.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
)

const (
	demoUsername = "demo.collector"
	demoEmail    = "demo@montluxe.example"
	demoPassword = "ticktock"
)

type demoProduct struct {
	name       string
	imageURL   string
	imageAlt   string
	priceCents int64
	quantity   int64
	categories []string
}

var demoProducts = []demoProduct{
	{
		name:       "Alpine Elegance",
		imageURL:   "img/alpine_elegance.png",
		imageAlt:   "Sophisticated Alpine Elegance watch showcasing Swiss craftsmanship.",
		priceCents: 459900,
		quantity:   12,
		categories: []string{"Genesis"},
	},
	{
		name:       "Horologe Elegance Alpine",
		imageURL:   "img/horologe_elegance_alpine.png",
		imageAlt:   "The Horologe Elegance Alpine watch blends tradition with alpine scenery.",
		priceCents: 612500,
		quantity:   8,
		categories: []string{"Elite"},
	},
	{
		name:       "Pastoral Reflection",
		imageURL:   "img/pastoral_reflection.png",
		imageAlt:   "The Pastoral Reflection watch, where time meets the tranquility of nature.",
		priceCents: 389000,
		quantity:   15,
		categories: []string{"Genesis"},
	},
	{
		name:       "Urban Allegory",
		imageURL:   "img/urban_allegory.png",
		imageAlt:   "Urban Allegory, a watch that embodies the spirit of the metropolis.",
		priceCents: 534900,
		quantity:   10,
		categories: []string{"Elite"},
	},
	{
		name:       "Haute Society",
		imageURL:   "img/haute_society.png",
		imageAlt:   "Haute Society, the watch that epitomizes the zenith of luxury.",
		priceCents: 789000,
		quantity:   5,
		categories: []string{"Genesis"},
	},
	{
		name:       "Alpine Precision",
		imageURL:   "img/alpine_precision.png",
		imageAlt:   "Alpine Precision, a watch that defines accuracy and Swiss elegance.",
		priceCents: 498500,
		quantity:   9,
		categories: []string{"Elite"},
	},
	{
		name:       "Alpine Enforcer",
		imageURL:   "img/alpine_enforcer.png",
		imageAlt:   "The Alpine Enforcer watch, robustness and precision in one piece.",
		priceCents: 655000,
		quantity:   7,
		categories: []string{"Genesis", "Elite"},
	},
	{
		name:       "Urban Reflection",
		imageURL:   "img/urban_reflection.png",
		imageAlt:   "Urban Reflection, the essence of city life on your wrist.",
		priceCents: 572500,
		quantity:   11,
		categories: []string{"Genesis", "Elite"},
	},
	{
		name:       "Velocity Visionary",
		imageURL:   "img/velocity_visionary.png",
		imageAlt:   "Velocity Visionary, where speed and vision meet sophistication.",
		priceCents: 699900,
		quantity:   6,
		categories: []string{"Genesis", "Elite"},
	},
}

// EnsureDemoCatalog seeds categories, products and the demo user, skipping
// whatever already exists.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := map[string]int64{}
		for _, name := range []string{"Genesis", "Elite"} {
			id, err := ensureCategory(ctx, tx, node, name)
			if err != nil {
				return err
			}
			categories[name] = id
		}

		for _, item := range demoProducts {
			if err := ensureProduct(ctx, tx, node, item, categories); err != nil {
				return err
			}
		}

		return ensureDemoUser(ctx, tx, node)
	})
}

func ensureCategory(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (int64, error) {
	var category categorydomain.Category
	err := tx.WithContext(ctx).First(&category, "name = ?", name).Error
	if err == nil {
		return category.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	category = categorydomain.Category{
		ID:        node.Generate().Int64(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func ensureProduct(ctx context.Context, tx *gorm.DB, node *snowflake.Node, item demoProduct, categories map[string]int64) error {
	var existing productdomain.Product
	err := tx.WithContext(ctx).First(&existing, "name = ?", item.name).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	product := productdomain.Product{
		ID:           node.Generate().Int64(),
		Name:         item.name,
		Description:  item.imageAlt,
		PriceCents:   item.priceCents,
		ItemQuantity: item.quantity,
		ImageURL:     item.imageURL,
		ImageAlt:     item.imageAlt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Omit("Links").Create(&product).Error; err != nil {
		return err
	}

	for _, categoryName := range item.categories {
		link := productdomain.ProductCategory{
			ID:         node.Generate().Int64(),
			ProductID:  product.ID,
			CategoryID: categories[categoryName],
		}
		if err := tx.WithContext(ctx).Omit("Category").Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureDemoUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var existing userdomain.User
	err := tx.WithContext(ctx).First(&existing, "username = ?", demoUsername).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	user := userdomain.User{
		ID:              node.Generate().Int64(),
		Username:        demoUsername,
		Email:           demoEmail,
		FirstName:       "Demo",
		LastName:        "Collector",
		ShippingAddress: "1 Horology Way",
		ShippingCity:    "Geneva",
		ShippingState:   "GE",
		ShippingZip:     "1201",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := user.SetPassword(demoPassword); err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&user).Error
}
