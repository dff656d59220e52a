package recommendations

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/techstoreperu/storefront-backend/pkg/enums"
)

// SystemInstruction frames the recommender role for the completion model.
const SystemInstruction = "Eres un sistema experto de recomendaciones de e-commerce. Analiza el comportamiento del usuario y los datos de productos para proporcionar recomendaciones personalizadas. Devuelve solo arrays JSON válidos con IDs de productos, puntuaciones y razones."

const promptFooter = "Devuelve un array JSON de IDs de productos recomendados con puntuaciones (0-1) y razones."

// BuildPrompt renders the strategy-specific request. targetID narrows the
// similar-products and bought-together strategies; it is ignored elsewhere.
// Strategies that lack the data they need fall back to the personalized
// prompt.
func BuildPrompt(recType enums.RecommendationType, profile userProfile, catalog []productSummary, targetID string) string {
	switch recType {
	case enums.RecommendationTypeSimilar:
		if target, ok := findSummary(catalog, targetID); ok {
			return similarProductsPrompt(target, catalog)
		}
	case enums.RecommendationTypeBoughtTogether:
		if target, ok := findSummary(catalog, targetID); ok {
			return boughtTogetherPrompt(target, profile, catalog)
		}
	case enums.RecommendationTypeTrending:
		return trendingPrompt(catalog)
	case enums.RecommendationTypeCategoryBased:
		if len(profile.categoryOrder) > 0 {
			return categoryBasedPrompt(profile, catalog)
		}
	}
	return personalizedPrompt(profile, catalog)
}

func similarProductsPrompt(target productSummary, catalog []productSummary) string {
	var b strings.Builder
	b.WriteString("Basado en el siguiente producto, recomienda 5 productos similares. Considera categoría, rango de precio y características.\n\n")
	fmt.Fprintf(&b, "Producto Actual:\n- Nombre: %s\n- Categoría: %s\n- Precio: %s\n- Descripción: %s\n\n",
		target.Name, target.Category, target.Price, target.Description)
	b.WriteString("Productos Disponibles:\n")
	for _, p := range catalog {
		if p.ID == target.ID {
			continue
		}
		fmt.Fprintf(&b, "- ID: %s, Nombre: %s, Categoría: %s, Precio: %s, Rating: %s\n",
			p.ID, p.Name, p.Category, p.Price, formatRating(p.AvgRating))
	}
	b.WriteString("\n" + promptFooter)
	return b.String()
}

func boughtTogetherPrompt(target productSummary, profile userProfile, catalog []productSummary) string {
	var b strings.Builder
	b.WriteString("Basado en patrones de compra, recomienda 5 productos que frecuentemente se compran juntos con el siguiente producto:\n\n")
	fmt.Fprintf(&b, "Producto Objetivo:\n- Nombre: %s\n- Categoría: %s\n\n", target.Name, target.Category)
	fmt.Fprintf(&b, "Patrones de Compra del Usuario:\n%s\n\n", marshalIndent(profile.OrderHistory))
	b.WriteString("Productos Disponibles:\n")
	for _, p := range catalog {
		if p.ID == target.ID {
			continue
		}
		fmt.Fprintf(&b, "- ID: %s, Nombre: %s, Categoría: %s, Precio: %s\n", p.ID, p.Name, p.Category, p.Price)
	}
	b.WriteString("\n" + promptFooter)
	return b.String()
}

func trendingPrompt(catalog []productSummary) string {
	stats := catalogStats(catalog)

	var b strings.Builder
	b.WriteString("Analiza los siguientes datos de productos y recomienda 5 productos trending basados en popularidad, calificaciones y demanda reciente.\n\n")
	b.WriteString("Productos Disponibles:\n")
	for _, p := range catalog {
		fmt.Fprintf(&b, "- ID: %s, Nombre: %s, Categoría: %s, Precio: %s, Rating: %s, Reseñas: %d, Stock: %d\n",
			p.ID, p.Name, p.Category, p.Price, formatRating(p.AvgRating), p.ReviewCount, p.Stock)
	}
	b.WriteString("\nConsidera productos con altas calificaciones, buen número de reseñas y niveles de stock razonables como trending.\n\n")
	b.WriteString(stats)
	b.WriteString("\n" + promptFooter)
	return b.String()
}

func categoryBasedPrompt(profile userProfile, catalog []productSummary) string {
	var b strings.Builder
	b.WriteString("Basado en las preferencias de categoría del usuario, recomienda 5 productos de sus categorías favoritas.\n\n")
	b.WriteString("Preferencias de Categoría del Usuario:\n")
	for _, cat := range profile.categoryOrder {
		fmt.Fprintf(&b, "- %s: %d compras\n", cat, profile.Preferences[cat])
	}
	b.WriteString("\nProductos Disponibles:\n")
	for _, p := range catalog {
		fmt.Fprintf(&b, "- ID: %s, Nombre: %s, Categoría: %s, Precio: %s, Rating: %s\n",
			p.ID, p.Name, p.Category, p.Price, formatRating(p.AvgRating))
	}
	b.WriteString("\n" + promptFooter)
	return b.String()
}

func personalizedPrompt(profile userProfile, catalog []productSummary) string {
	stats := catalogStats(catalog)

	var b strings.Builder
	b.WriteString("Basado en el historial de compras y preferencias del usuario, proporciona 5 recomendaciones de productos personalizadas.\n\n")
	fmt.Fprintf(&b, "Perfil del Usuario:\n%s\n\n", marshalIndent(profile))
	b.WriteString("Productos Disponibles:\n")
	for _, p := range catalog {
		fmt.Fprintf(&b, "- ID: %s, Nombre: %s, Categoría: %s, Precio: %s, Rating: %s\n",
			p.ID, p.Name, p.Category, p.Price, formatRating(p.AvgRating))
	}
	b.WriteString("\nConsidera los patrones de compra, categorías preferidas y sensibilidad de precio del usuario al hacer recomendaciones.\n\n")
	b.WriteString("Estadísticas Importantes:\n")
	b.WriteString(stats)
	b.WriteString("\n" + promptFooter)
	return b.String()
}

// catalogStats highlights price and rating extremes for the prompt.
func catalogStats(catalog []productSummary) string {
	if len(catalog) == 0 {
		return ""
	}
	mostExpensive := catalog[0]
	leastExpensive := catalog[0]
	highestRated := catalog[0]
	mostReviewed := catalog[0]
	for _, p := range catalog {
		if p.Price.GreaterThan(mostExpensive.Price) {
			mostExpensive = p
		}
		if p.Price.LessThan(leastExpensive.Price) {
			leastExpensive = p
		}
		if p.AvgRating > highestRated.AvgRating {
			highestRated = p
		}
		if p.ReviewCount > mostReviewed.ReviewCount {
			mostReviewed = p
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- Producto más caro: %s (S/%s)\n", mostExpensive.Name, mostExpensive.Price.StringFixed(2))
	fmt.Fprintf(&b, "- Producto más barato: %s (S/%s)\n", leastExpensive.Name, leastExpensive.Price.StringFixed(2))
	fmt.Fprintf(&b, "- Producto mejor calificado: %s (%s/5)\n", highestRated.Name, formatRating(highestRated.AvgRating))
	fmt.Fprintf(&b, "- Producto más reseñado: %s (%d reseñas)\n", mostReviewed.Name, mostReviewed.ReviewCount)
	return b.String()
}

func findSummary(catalog []productSummary, id string) (productSummary, bool) {
	if id == "" {
		return productSummary{}, false
	}
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return productSummary{}, false
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
