package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/enums"
)

type reviewSeed struct {
	Rating  int
	Comment string
}

type productSeed struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	Reviews     []reviewSeed
}

type orderLineSeed struct {
	Product  string
	Quantity int
	Price    decimal.Decimal
}

type orderSeed struct {
	Status enums.OrderStatus
	Total  decimal.Decimal
	Age    time.Duration
	Lines  []orderLineSeed
}

var categorySeeds = []string{
	"Laptops",
	"Smartphones",
	"Audio",
	"Wearables",
	"Tablets",
	"Cámaras",
}

var productSeeds = []productSeed{
	{
		Name:        `MacBook Pro 16"`,
		Description: "Potente laptop con chip M2 Pro, ideal para profesionales y creadores",
		Price:       decimal.NewFromFloat(2499.99),
		Stock:       15,
		Category:    "Laptops",
		Reviews: []reviewSeed{
			{5, "Excelente laptop para desarrollo de software"},
			{4, "Muy buena pero un poco cara"},
			{5, "La mejor laptop que he tenido"},
		},
	},
	{
		Name:        "iPhone 15 Pro",
		Description: "El smartphone más avanzado con cámara profesional y titanio",
		Price:       decimal.NewFromFloat(1199.99),
		Stock:       25,
		Category:    "Smartphones",
		Reviews: []reviewSeed{
			{5, "Cámara increíble y rendimiento excepcional"},
			{5, "Perfecto para fotografía profesional"},
			{4, "Muy bueno pero el precio es elevado"},
		},
	},
	{
		Name:        "AirPods Pro 2",
		Description: "Auriculares inalámbricos con cancelación activa de ruido",
		Price:       decimal.NewFromFloat(249.99),
		Stock:       50,
		Category:    "Audio",
		Reviews: []reviewSeed{
			{5, "Cancelación de ruido espectacular"},
			{4, "Muy cómodos para uso prolongado"},
			{5, "La mejor calidad de audio"},
		},
	},
	{
		Name:        "Apple Watch Ultra 2",
		Description: "Smartwatch resistente para deportes extremos y aventuras",
		Price:       decimal.NewFromFloat(799.99),
		Stock:       30,
		Category:    "Wearables",
		Reviews: []reviewSeed{
			{5, "Perfecto para deportes extremos"},
			{4, "Muy resistente y con buena batería"},
			{5, "El mejor smartwatch del mercado"},
		},
	},
	{
		Name:        `iPad Pro 12.9"`,
		Description: "Tablet profesional con chip M2 y pantalla Liquid Retina XDR",
		Price:       decimal.NewFromFloat(1099.99),
		Stock:       20,
		Category:    "Tablets",
		Reviews: []reviewSeed{
			{5, "Ideal para diseño digital"},
			{4, "Pantalla increíble y gran rendimiento"},
			{5, "Perfecto para trabajo creativo"},
		},
	},
	{
		Name:        "Sony Alpha 7R V",
		Description: "Cámara mirrorless full-frame de 61MP para fotografía profesional",
		Price:       decimal.NewFromFloat(3899.99),
		Stock:       10,
		Category:    "Cámaras",
		Reviews: []reviewSeed{
			{5, "Calidad de imagen profesional"},
			{5, "La mejor cámara que he usado"},
			{4, "Excelente pero muy especializada"},
		},
	},
	{
		Name:        "Samsung Galaxy S24 Ultra",
		Description: "Smartphone Android premium con S Pen y cámara de 200MP",
		Price:       decimal.NewFromFloat(1299.99),
		Stock:       18,
		Category:    "Smartphones",
		Reviews: []reviewSeed{
			{4, "Buena alternativa al iPhone"},
			{5, "El S Pen es muy útil"},
			{4, "Buena cámara y rendimiento"},
		},
	},
	{
		Name:        "Dell XPS 15",
		Description: "Laptop de alto rendimiento para creadores y gamers",
		Price:       decimal.NewFromFloat(1899.99),
		Stock:       12,
		Category:    "Laptops",
		Reviews: []reviewSeed{
			{4, "Buena laptop para trabajo"},
			{4, "Pantalla hermosa y buen teclado"},
			{3, "Un poco pesada pero buen rendimiento"},
		},
	},
}

const (
	demoUserEmail = "demo@techstoreperu.com"
	demoUserName  = "Usuario Demo"
)

var orderSeeds = []orderSeed{
	{
		Status: enums.OrderStatusDelivered,
		Total:  decimal.NewFromFloat(2499.99),
		Age:    21 * 24 * time.Hour,
		Lines: []orderLineSeed{
			{Product: `MacBook Pro 16"`, Quantity: 1, Price: decimal.NewFromFloat(2499.99)},
		},
	},
	{
		Status: enums.OrderStatusPaid,
		Total:  decimal.NewFromFloat(1449.98),
		Age:    7 * 24 * time.Hour,
		Lines: []orderLineSeed{
			{Product: "iPhone 15 Pro", Quantity: 1, Price: decimal.NewFromFloat(1199.99)},
			{Product: "AirPods Pro 2", Quantity: 1, Price: decimal.NewFromFloat(249.99)},
		},
	},
	{
		Status: enums.OrderStatusDelivered,
		Total:  decimal.NewFromFloat(1049.98),
		Age:    3 * 24 * time.Hour,
		Lines: []orderLineSeed{
			{Product: "Apple Watch Ultra 2", Quantity: 1, Price: decimal.NewFromFloat(799.99)},
			{Product: "AirPods Pro 2", Quantity: 1, Price: decimal.NewFromFloat(249.99)},
		},
	},
}
