package recommendations

import (
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// productSummary is the catalog snapshot fed to the recommender prompt.
type productSummary struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	AvgRating   float64
	ReviewCount int
}

// orderLine is one purchased item in the serialized user profile.
type orderLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type orderSummary struct {
	ID    string      `json:"id"`
	Items []orderLine `json:"items"`
}

// userProfile is the purchase-history view serialized into prompts.
// categoryOrder preserves first-seen order for the preference listing.
type userProfile struct {
	UserID        string         `json:"userId"`
	OrderHistory  []orderSummary `json:"orderHistory"`
	Preferences   map[string]int `json:"preferences"`
	categoryOrder []string
}

func buildUserProfile(userID string, orders []models.Order) userProfile {
	profile := userProfile{
		UserID:       userID,
		OrderHistory: make([]orderSummary, 0, len(orders)),
		Preferences:  make(map[string]int),
	}
	for _, order := range orders {
		summary := orderSummary{ID: order.ID.String(), Items: make([]orderLine, 0, len(order.Items))}
		for _, item := range order.Items {
			name, category := "", ""
			if item.Product != nil {
				name = item.Product.Name
				if item.Product.Category != nil {
					category = item.Product.Category.Name
				}
			}
			summary.Items = append(summary.Items, orderLine{
				ProductID:   item.ProductID.String(),
				ProductName: name,
				Category:    category,
				Price:       item.Price,
				Quantity:    item.Quantity,
			})
			if category != "" {
				if _, seen := profile.Preferences[category]; !seen {
					profile.categoryOrder = append(profile.categoryOrder, category)
				}
				profile.Preferences[category]++
			}
		}
		profile.OrderHistory = append(profile.OrderHistory, summary)
	}
	return profile
}

func summarizeProducts(products []models.Product) []productSummary {
	out := make([]productSummary, 0, len(products))
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		out = append(out, productSummary{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    category,
			Stock:       p.Stock,
			AvgRating:   meanRating(p.Reviews),
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
