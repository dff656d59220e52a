package chat

import (
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// ProductInfo is the catalog snapshot the assistant reasons over. Rating is
// the review mean when reviews exist, otherwise a seeded static value.
type ProductInfo struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	Rating      float64
	ReviewCount int
}

// ProductInfosFromModels flattens catalog rows into prompt-ready snapshots.
func ProductInfosFromModels(products []models.Product) []ProductInfo {
	out := make([]ProductInfo, 0, len(products))
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		out = append(out, ProductInfo{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			Category:    category,
			Rating:      meanRating(p.Reviews),
			ReviewCount: len(p.Reviews),
		})
	}
	return out
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// FallbackCatalog returns the static product sample used when the store
// catalog is empty or unreachable.
func FallbackCatalog() []ProductInfo {
	return []ProductInfo{
		{ID: "1", Name: `MacBook Pro 16"`, Description: "Potente laptop con chip M2 Pro, ideal para profesionales y creadores", Price: decimal.NewFromFloat(9999.99), Stock: 15, Category: "Laptops", Rating: 4.8, ReviewCount: 156},
		{ID: "2", Name: "iPhone 15 Pro", Description: "El smartphone más avanzado con cámara profesional y titanio", Price: decimal.NewFromFloat(4799.99), Stock: 25, Category: "Smartphones", Rating: 4.9, ReviewCount: 289},
		{ID: "3", Name: "AirPods Pro 2", Description: "Auriculares inalámbricos con cancelación activa de ruido", Price: decimal.NewFromFloat(999.99), Stock: 50, Category: "Audio", Rating: 4.7, ReviewCount: 342},
		{ID: "4", Name: "Apple Watch Ultra 2", Description: "Smartwatch resistente para deportes extremos y aventuras", Price: decimal.NewFromFloat(3199.99), Stock: 30, Category: "Wearables", Rating: 4.6, ReviewCount: 198},
		{ID: "5", Name: `iPad Pro 12.9"`, Description: "Tablet profesional con chip M2 y pantalla Liquid Retina XDR", Price: decimal.NewFromFloat(4399.99), Stock: 20, Category: "Tablets", Rating: 4.8, ReviewCount: 167},
		{ID: "6", Name: "Sony Alpha 7R V", Description: "Cámara mirrorless full-frame de 61MP para fotografía profesional", Price: decimal.NewFromFloat(15599.99), Stock: 10, Category: "Cámaras", Rating: 4.9, ReviewCount: 89},
		{ID: "7", Name: "Samsung Galaxy S24 Ultra", Description: "Smartphone Android premium con S Pen y cámara de 200MP", Price: decimal.NewFromFloat(5199.99), Stock: 18, Category: "Smartphones", Rating: 4.7, ReviewCount: 234},
		{ID: "8", Name: "Dell XPS 15", Description: "Laptop de alto rendimiento para creadores y gamers", Price: decimal.NewFromFloat(7599.99), Stock: 12, Category: "Laptops", Rating: 4.5, ReviewCount: 143},
		{ID: "9", Name: "Xiaomi Redmi Note 13", Description: "Smartphone con excelente relación calidad-precio para el mercado peruano", Price: decimal.NewFromFloat(1299.99), Stock: 45, Category: "Smartphones", Rating: 4.4, ReviewCount: 567},
		{ID: "10", Name: "Lenovo IdeaPad 3", Description: "Laptop ideal para estudiantes y trabajo remoto en Perú", Price: decimal.NewFromFloat(2499.99), Stock: 30, Category: "Laptops", Rating: 4.3, ReviewCount: 234},
		{ID: "11", Name: "JBL Flip 6", Description: "Bocina portátil Bluetooth resistente al agua", Price: decimal.NewFromFloat(399.99), Stock: 60, Category: "Audio", Rating: 4.6, ReviewCount: 445},
		{ID: "12", Name: "Huawei Band 8", Description: "Smartband fitness con monitor de salud y batería de larga duración", Price: decimal.NewFromFloat(299.99), Stock: 80, Category: "Wearables", Rating: 4.5, ReviewCount: 678},
	}
}
