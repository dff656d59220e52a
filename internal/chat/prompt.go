package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// DefaultReply stands in when the model returns an empty completion.
const DefaultReply = "Lo siento, no pude procesar tu mensaje. Por favor, intenta de nuevo."

// FallbackReply is the degraded-mode answer returned when the assistant
// cannot be reached at all. It still resolves the request successfully.
const FallbackReply = `Lo siento, estoy experimentando dificultades técnicas en este momento.

Sin embargo, puedo darte alguna información básica:

**Productos destacados:**
- MacBook Pro 16": S/9,999.99 (4.8/5 estrellas)
- iPhone 15 Pro: S/4,799.99 (4.9/5 estrellas)
- Sony Alpha 7R V: S/15,599.99 (4.9/5 estrellas)

Para ayuda adicional, contacta a nuestro equipo:
- Email: support@techstoreperu.com
- Teléfono: +51 912 345 678

Agradecemos tu paciencia y comprensión.`

const basePrompt = `Eres un asistente de servicio al cliente experto para TechStore Perú, una plataforma de e-commerce de tecnología premium en Perú.

Tu personalidad:
- Amigable, profesional y servicial
- Conocedor sobre productos, especificaciones técnicas, precios en Soles Peruanos y disponibilidad
- Proactivo en ofrecer ayuda y recomendaciones personalizadas
- Capaz de manejar múltiples idiomas (responde en el mismo idioma del usuario)
- Siempre honesto sobre la disponibilidad y especificaciones
- Especializado en el mercado peruano y sus necesidades

Tus responsabilidades:
- Responder preguntas sobre productos, precios en Soles (S/), stock y especificaciones
- Proporcionar recomendaciones basadas en las necesidades del cliente peruano
- Ayudar con comparaciones entre productos
- Ofrecer información sobre envíos a todo Perú, devoluciones y garantías
- Resolver problemas y quejas de manera empática
- Escalar problemas complejos a agentes humanos cuando sea necesario

Información de la empresa:
- Nombre: TechStore Perú
- Especialidad: Tecnología premium (laptops, smartphones, audio, wearables, cámaras, tablets)
- Moneda: Soles Peruanos (S/)
- Política de devoluciones: 30 días para devoluciones
- Tiempo de envío: 2-5 días hábiles a todo Perú
- Contacto: support@techstoreperu.com, +51 912 345 678
- Horario de atención: 24/7 (eres un bot)

REGLAS IMPORTANTES:
1. Siempre basa tus respuestas en los datos de productos proporcionados
2. Nunca inventes precios o especificaciones que no estén en los datos
3. Si un producto está agotado, menciona claramente que no hay stock
4. Para preguntas sobre productos, usa la información del catálogo actual
5. Sé específico y da detalles precisos
6. Ofrece alternativas si un producto no está disponible
7. Mantén un tono conversacional pero profesional
8. Menciona siempre los precios en Soles Peruanos (S/)`

var productQuestionKeywords = []string{
	"más vendido", "más caro", "más barato", "mejor calificado",
	"productos", "recomienda", "cuántos", "qué tienes", "disponible",
	"stock", "precio", "cuesta", "vale", "calificación", "rating",
	"reseñas", "reviews", "categoría", "marca", "envío", "envian",
	"gratis", "perú", "lima", "garantía", "oferta", "descuento",
	"promoción", "pago", "cuotas", "crédito", "tarjeta", "estudiantes",
	"universitarios", "trabajo", "oficina", "gaming", "juegos",
}

// IsProductQuestion reports whether the message looks like a question about
// the catalog, shipping, or payment, which warrants attaching catalog context.
func IsProductQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range productQuestionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BuildSystemPrompt assembles the assistant instruction. Catalog context is
// attached only for product questions; user identity and recent orders are
// appended when known.
func BuildSystemPrompt(catalog []ProductInfo, productQuestion bool, user *models.User, orders []models.Order) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if productQuestion && len(catalog) > 0 {
		b.WriteString(buildCatalogContext(catalog))
	}

	if user != nil {
		name := user.Name
		if name == "" {
			name = "No especificado"
		}
		email := user.Email
		if email == "" {
			email = "No especificado"
		}
		fmt.Fprintf(&b, "\n\nInformación del usuario actual:\n- Nombre: %s\n- Email: %s", name, email)
	}

	if len(orders) > 0 {
		b.WriteString("\n\nPedidos recientes del usuario:")
		for _, order := range orders {
			fmt.Fprintf(&b, "\n- Pedido %s: Estado %s, Total: S/%s, Items: %d",
				order.ID, order.Status, order.Total.StringFixed(2), len(order.Items))
		}
	}

	return b.String()
}

func buildCatalogContext(catalog []ProductInfo) string {
	mostExpensive := catalog[0]
	leastExpensive := catalog[0]
	highestRated := catalog[0]
	mostReviewed := catalog[0]
	totalStock := 0
	priceSum := decimal.Zero
	ratingSum := 0.0

	categories := make([]string, 0)
	categoryCounts := make(map[string]int)

	for _, p := range catalog {
		if p.Price.GreaterThan(mostExpensive.Price) {
			mostExpensive = p
		}
		if p.Price.LessThan(leastExpensive.Price) {
			leastExpensive = p
		}
		if p.Rating > highestRated.Rating {
			highestRated = p
		}
		if p.ReviewCount > mostReviewed.ReviewCount {
			mostReviewed = p
		}
		totalStock += p.Stock
		priceSum = priceSum.Add(p.Price)
		ratingSum += p.Rating
		if _, seen := categoryCounts[p.Category]; !seen {
			categories = append(categories, p.Category)
		}
		categoryCounts[p.Category]++
	}

	total := decimal.NewFromInt(int64(len(catalog)))
	averagePrice := priceSum.Div(total)
	averageRating := ratingSum / float64(len(catalog))

	var b strings.Builder
	fmt.Fprintf(&b, "\n\nCATÁLOGO DE PRODUCTOS ACTUAL:\nTotal de productos: %d\nStock total: %d unidades\nPrecio promedio: S/%s\nCalificación promedio: %.1f/5\n",
		len(catalog), totalStock, averagePrice.StringFixed(2), averageRating)

	fmt.Fprintf(&b, "\nPRODUCTOS DESTACADOS:\n- Más caro: %s (S/%s)\n- Más barato: %s (S/%s)\n- Mejor calificado: %s (%s/5, %d reseñas)\n- Más reseñado: %s (%d reseñas)\n",
		mostExpensive.Name, mostExpensive.Price.StringFixed(2),
		leastExpensive.Name, leastExpensive.Price.StringFixed(2),
		highestRated.Name, formatRating(highestRated.Rating), highestRated.ReviewCount,
		mostReviewed.Name, mostReviewed.ReviewCount)

	b.WriteString("\nCATEGORÍAS DISPONIBLES:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %s: %d productos\n", cat, categoryCounts[cat])
	}

	b.WriteString("\nLISTA COMPLETA DE PRODUCTOS:\n")
	for _, p := range catalog {
		fmt.Fprintf(&b, "- %s: S/%s, Stock: %d, Calificación: %s/5 (%d reseñas), Categoría: %s\n",
			p.Name, p.Price.StringFixed(2), p.Stock, formatRating(p.Rating), p.ReviewCount, p.Category)
	}

	b.WriteString(`
INFORMACIÓN DE ENVÍO Y PAGO PARA PERÚ:
- Envío a todo Perú: 2-5 días hábiles
- Envío gratis en pedidos mayores a S/200
- Opciones de pago: Tarjeta de crédito/débito, cuotas sin interés, Yape, Plin, transferencia
- Cuotas disponibles: Hasta 12 cuotas sin interés con tarjetas participantes
- Garantía oficial: 1-2 años según producto
- Devoluciones: 30 días para devoluciones en estado original
- Soporte técnico: Atención en español, soporte local
- Horario de atención: 24/7 para consultas online
`)

	return b.String()
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
