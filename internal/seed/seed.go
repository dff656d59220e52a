package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techstoreperu/storefront-backend/internal/analytics"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
)

// Run loads the sample dataset: categories, products with reviews, a demo
// customer, and a few orders. It is a no-op when products already exist.
func Run(ctx context.Context, db *gorm.DB, logg *logger.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("checking existing products: %w", err)
	}
	if count > 0 {
		if logg != nil {
			logg.Info(ctx, "seed skipped, products already present")
		}
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uuid.UUID, len(categorySeeds))
		for _, name := range categorySeeds {
			category := models.Category{Name: name}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("creating category %s: %w", name, err)
			}
			categories[name] = category.ID
		}

		demoUser := models.User{Email: demoUserEmail, Name: demoUserName}
		if err := tx.Create(&demoUser).Error; err != nil {
			return fmt.Errorf("creating demo user: %w", err)
		}

		products := make(map[string]uuid.UUID, len(productSeeds))
		for _, ps := range productSeeds {
			product := models.Product{
				Name:        ps.Name,
				Description: ps.Description,
				Price:       ps.Price,
				Stock:       ps.Stock,
				CategoryID:  categories[ps.Category],
				IsActive:    true,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("creating product %s: %w", ps.Name, err)
			}
			products[ps.Name] = product.ID

			for _, rs := range ps.Reviews {
				comment := rs.Comment
				review := models.Review{
					ProductID: product.ID,
					UserID:    demoUser.ID,
					Rating:    rs.Rating,
					Comment:   &comment,
				}
				if err := tx.Create(&review).Error; err != nil {
					return fmt.Errorf("creating review for %s: %w", ps.Name, err)
				}
			}
		}

		now := time.Now().UTC()
		for i, os := range orderSeeds {
			order := models.Order{
				UserID:    demoUser.ID,
				Status:    os.Status,
				Total:     os.Total,
				CreatedAt: now.Add(-os.Age),
			}
			for _, line := range os.Lines {
				order.Items = append(order.Items, models.OrderItem{
					ProductID: products[line.Product],
					Quantity:  line.Quantity,
					Price:     line.Price,
				})
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("creating sample order %d: %w", i, err)
			}
		}

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("seed complete (%d categories, %d products, %d orders)",
				len(categorySeeds), len(productSeeds), len(orderSeeds)))
		}
		return nil
	})
}

// FallbackDataset builds the injectable default dataset the analytics
// aggregator uses when the store has no records yet. Order ages are relative
// to now so the sample always lands inside the reporting window.
func FallbackDataset() *analytics.Dataset {
	now := time.Now().UTC()
	demoUser := uuid.New()

	products := make([]analytics.ProductRecord, 0, len(productSeeds))
	byName := make(map[string]uuid.UUID, len(productSeeds))
	for _, ps := range productSeeds {
		id := uuid.New()
		byName[ps.Name] = id
		ratings := make([]int, 0, len(ps.Reviews))
		for _, rs := range ps.Reviews {
			ratings = append(ratings, rs.Rating)
		}
		products = append(products, analytics.ProductRecord{
			ID:       id,
			Name:     ps.Name,
			Category: ps.Category,
			Price:    ps.Price,
			Stock:    ps.Stock,
			Ratings:  ratings,
		})
	}

	orders := make([]analytics.OrderRecord, 0, len(orderSeeds))
	for _, os := range orderSeeds {
		record := analytics.OrderRecord{
			ID:        uuid.New(),
			UserID:    demoUser,
			Total:     os.Total,
			CreatedAt: now.Add(-os.Age),
		}
		for _, line := range os.Lines {
			record.Items = append(record.Items, analytics.OrderItemRecord{
				ProductID: byName[line.Product],
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
		}
		orders = append(orders, record)
	}

	return &analytics.Dataset{Orders: orders, Products: products}
}
