package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mesabot/app/service/catalog"
	"mesabot/app/service/order"
)

const maxItemsPerCategory = 5

const (
	moderationMessage = "Prefiero mantener la conversación respetuosa. ¿Puedo ayudarte con nuestro menú, entregas o tu pedido?"

	apologyMessage = "Disculpa, estoy teniendo problemas para responder en este momento. ¿Puedo ayudarte con información sobre nuestro menú, entregas o tu pedido?"

	clarifyOrderMessage = "Entiendo que quieres hacer un pedido. ¿Podrías especificar qué te gustaría ordenar? Por ejemplo, puedes decir '2 x hamburguesa' o preguntarme por el menú si necesitas más información."

	invalidQuantityMessage = "La cantidad debe ser al menos 1. ¿Cuántas unidades te gustaría ordenar?"

	emptyOrderMessage = "Parece que aún no has agregado nada a tu pedido. ¿Te gustaría ver el menú para empezar?"

	cancelledMessage = "He cancelado tu pedido. ¿Te gustaría empezar uno nuevo?"

	nothingToCancelMessage = "No tienes ningún pedido en curso, así que no hay nada que cancelar. ¿Te muestro el menú?"

	removeClarifyMessage = "¿Qué te gustaría quitar de tu pedido?"

	persistFailedMessage = "Lo siento, tuve un problema registrando tu pedido. Por favor inténtalo de nuevo en un momento."

	priceNotFoundMessage = "Lo siento, no pude encontrar ese artículo en nuestro menú. ¿Quieres ver la carta?"

	hoursMessage = "🕒 Con gusto te comparto nuestro horario:\nLunes a Viernes: 11:00 AM - 10:00 PM\nSábados y Domingos: 10:00 AM - 11:00 PM\n¿Te gustaría hacer una reserva o un pedido?"

	specialMessage = "🌟 ¡Tenemos un especial delicioso hoy! Es una Hamburguesa gourmet con papas fritas. ¿Te gustaría probarlo?"
)

type rule struct {
	name    string
	matches func(lower string) bool
	handle  func(ctx context.Context, sess *Session, lower string) string
}

// buildRules returns the router's rule list. Evaluation is first match wins
// and the order here is a contract: menu before category before delivery
// before ordering before price before hours before the special.
func (s *Service) buildRules() []rule {
	return []rule{
		{
			name:    "menu",
			matches: func(lower string) bool { return containsAny(lower, "menú", "carta") },
			handle: func(_ context.Context, _ *Session, _ string) string {
				return s.fullMenu()
			},
		},
		{
			name: "category",
			matches: func(lower string) bool {
				_, ok := s.categoryIn(lower)
				return ok
			},
			handle: func(_ context.Context, _ *Session, lower string) string {
				category, _ := s.categoryIn(lower)
				return s.categoryMenu(category)
			},
		},
		{
			name:    "delivery",
			matches: func(lower string) bool { return containsAny(lower, "entrega", "reparto") },
			handle: func(_ context.Context, _ *Session, lower string) string {
				return s.deliveryInfo(lower)
			},
		},
		{
			name: "order",
			matches: func(lower string) bool {
				return containsAny(lower, "pedir", "ordenar",
					"finaliza", "confirma", "cancela", "quita", "elimina", "total", "cuenta")
			},
			handle: func(_ context.Context, sess *Session, lower string) string {
				return s.handleOrder(sess, lower)
			},
		},
		{
			name:    "price",
			matches: func(lower string) bool { return containsAny(lower, "precio", "cuesta", "vale") },
			handle: func(_ context.Context, _ *Session, lower string) string {
				return s.priceInfo(lower)
			},
		},
		{
			name:    "hours",
			matches: func(lower string) bool { return strings.Contains(lower, "horario") },
			handle: func(_ context.Context, _ *Session, _ string) string {
				return hoursMessage
			},
		},
		{
			name:    "special",
			matches: func(lower string) bool { return strings.Contains(lower, "especial") },
			handle: func(_ context.Context, _ *Session, _ string) string {
				return specialMessage
			},
		},
	}
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}

	return false
}

func (s *Service) categoryIn(lower string) (string, bool) {
	for _, category := range s.catalog.Categories() {
		if strings.Contains(lower, strings.ToLower(category)) {
			return category, true
		}
	}

	return "", false
}

func (s *Service) fullMenu() string {
	var builder strings.Builder

	builder.WriteString("🍽️ Con gusto te muestro nuestro menú:\n\n")

	for _, category := range s.catalog.Categories() {
		builder.WriteString("**" + category + "**\n")

		items := s.catalog.ItemsInCategory(category)
		for i, item := range items {
			if i >= maxItemsPerCategory {
				builder.WriteString("...\n")
				break
			}

			builder.WriteString(formatMenuLine(item))
		}

		builder.WriteString("\n")
	}

	builder.WriteString("¿Te interesa alguna categoría en particular? Puedo darte más detalles si lo deseas.")

	return builder.String()
}

func (s *Service) categoryMenu(category string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("🍽️ Aquí tienes nuestro menú de %s:\n\n", category))

	for _, item := range s.catalog.ItemsInCategory(category) {
		builder.WriteString(formatMenuLine(item))
	}

	builder.WriteString("\n¿Te gustaría ordenar algo de esta categoría?")

	return builder.String()
}

func formatMenuLine(item catalog.MenuItem) string {
	if item.HasPrice {
		return fmt.Sprintf("• %s - %s ($%s)\n", item.Name, item.ServingSize, item.Price.StringFixed(2))
	}

	return fmt.Sprintf("• %s - %s\n", item.Name, item.ServingSize)
}

func (s *Service) deliveryInfo(lower string) string {
	for _, entry := range s.catalog.Cities() {
		name := strings.TrimSpace(strings.Split(entry, ",")[0])
		if name == "" || !strings.Contains(lower, strings.ToLower(name)) {
			continue
		}

		matched, ok := s.catalog.CityServed(name)
		if !ok {
			return fmt.Sprintf("Lo siento, parece que no realizamos entregas en %s por el momento. ¿Quieres que te muestre algunas ciudades cercanas donde sí entregamos?",
				catalog.TitleCity(name))
		}

		return fmt.Sprintf("¡Buenas noticias! Sí realizamos entregas en %s. ¿Te gustaría hacer un pedido?", matched)
	}

	samples := s.catalog.SampleCities(5)

	return fmt.Sprintf("¡Claro! Realizamos entregas en muchas ciudades. Algunos ejemplos son: %s... y muchas más. ¿En qué ciudad te encuentras? Puedo verificar si hacemos entregas allí.",
		strings.Join(samples, ", "))
}

func (s *Service) handleOrder(sess *Session, lower string) string {
	switch {
	case containsAny(lower, "finaliza", "confirma"):
		return s.confirmOrder(sess)
	case strings.Contains(lower, "cancela"):
		return s.cancelOrder(sess)
	case containsAny(lower, "quita", "elimina"):
		return s.removeItem(sess, lower)
	case containsAny(lower, "total", "cuenta"):
		return s.orderTotal(sess)
	}

	pairs := parseOrderPairs(lower)
	if len(pairs) == 0 {
		return clarifyOrderMessage
	}

	responses := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		responses = append(responses, s.addItem(sess, pair))
	}

	return strings.Join(responses, "\n")
}

func (s *Service) addItem(sess *Session, pair orderPair) string {
	item, ok := s.catalog.FindItem(pair.Item)
	if !ok {
		return fmt.Sprintf("Lo siento, no pude encontrar '%s' en nuestro menú. ¿Quieres que te muestre las opciones disponibles?", pair.Item)
	}

	line, err := sess.ledger.Add(item, pair.Quantity)
	if err != nil {
		return invalidQuantityMessage
	}

	if line.Price != nil {
		return fmt.Sprintf("¡Perfecto! He añadido %d x %s (%s, $%s c/u) a tu pedido. ¿Deseas agregar algo más?",
			pair.Quantity, item.Name, item.ServingSize, line.Price.StringFixed(2))
	}

	return fmt.Sprintf("¡Perfecto! He añadido %d x %s (%s) a tu pedido. ¿Deseas agregar algo más?",
		pair.Quantity, item.Name, item.ServingSize)
}

func (s *Service) removeItem(sess *Session, lower string) string {
	for _, line := range sess.ledger.Lines() {
		if !strings.Contains(lower, strings.ToLower(line.Item)) {
			continue
		}

		removed, err := sess.ledger.Remove(line.Item)
		if err != nil {
			break
		}

		return fmt.Sprintf("Listo, he quitado %s de tu pedido. ¿Algo más?", removed.Item)
	}

	// Named a known menu item that is not in the order.
	for _, item := range s.catalog.Items() {
		if strings.Contains(lower, strings.ToLower(item.Name)) {
			return fmt.Sprintf("No encontré '%s' en tu pedido actual. ¿Quieres revisar el total o agregar algo?", item.Name)
		}
	}

	return removeClarifyMessage
}

func (s *Service) orderTotal(sess *Session) string {
	lines := sess.ledger.Lines()
	if len(lines) == 0 {
		return emptyOrderMessage
	}

	priced := false
	for _, line := range lines {
		if line.Price != nil {
			priced = true
			break
		}
	}

	if !priced {
		return fmt.Sprintf("Tu pedido tiene %d artículos. Aún no tengo precios cargados para calcular el total.", len(lines))
	}

	return fmt.Sprintf("El total de tu pedido es $%s. ¿Deseas finalizarlo?", sess.ledger.Total().StringFixed(2))
}

func (s *Service) confirmOrder(sess *Session) string {
	snapshot, err := sess.ledger.Confirm(time.Now())
	if errors.Is(err, order.ErrEmptyOrder) {
		return emptyOrderMessage
	}

	if err := s.sink.Append(snapshot); err != nil {
		slog.Error("Failed to persist finalized order",
			"error", err,
			"lines", snapshot.Lines,
			"telegram", true,
		)

		return persistFailedMessage
	}

	var builder strings.Builder

	builder.WriteString("Aquí tienes el resumen de tu pedido:\n")
	for _, line := range snapshot.Lines {
		builder.WriteString(fmt.Sprintf("• %d x %s (%s)\n", line.Quantity, line.Item, line.ServingSize))
	}

	if snapshot.Total.IsPositive() {
		builder.WriteString(fmt.Sprintf("Total: $%s\n", snapshot.Total.StringFixed(2)))
	}

	builder.WriteString(fmt.Sprintf("\n¡Genial! Tu pedido ha sido registrado con éxito a las %s. ¡Gracias por tu compra! ¿Hay algo más en lo que pueda ayudarte?",
		snapshot.Timestamp.Format("2006-01-02 15:04:05")))

	return builder.String()
}

func (s *Service) cancelOrder(sess *Session) string {
	if !sess.ledger.Cancel() {
		return nothingToCancelMessage
	}

	return cancelledMessage
}

func (s *Service) priceInfo(lower string) string {
	for _, item := range s.catalog.Items() {
		if !strings.Contains(lower, strings.ToLower(item.Name)) {
			continue
		}

		if !item.HasPrice {
			return fmt.Sprintf("Por el momento no tengo el precio de %s. ¿Puedo ayudarte con algo más?", item.Name)
		}

		return fmt.Sprintf("El precio de %s (%s) es $%s. ¿Te gustaría ordenarlo?",
			item.Name, item.ServingSize, item.Price.StringFixed(2))
	}

	return priceNotFoundMessage
}
