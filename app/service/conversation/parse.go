package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

// orderPair is one parsed "quantity x item" token of an ordering utterance.
type orderPair struct {
	Quantity int
	Item     string
}

var (
	pairTokenRe  = regexp.MustCompile(`(\d+)\s*x\s*`)
	terminatorRe = regexp.MustCompile(`\d+\s*x|\by\b|,`)
)

// parseOrderPairs scans a lower-cased utterance for "N x item" pairs. Item
// text runs from the token up to the next number+"x" token, the standalone
// word "y", a comma, or end of string, so "2 x hamburguesa y 1 x papas"
// splits into two pairs in order.
func parseOrderPairs(lower string) []orderPair {
	tokens := pairTokenRe.FindAllStringSubmatchIndex(lower, -1)
	if len(tokens) == 0 {
		return nil
	}

	var pairs []orderPair

	for i, token := range tokens {
		quantity, err := strconv.Atoi(lower[token[2]:token[3]])
		if err != nil {
			continue
		}

		end := len(lower)
		if i+1 < len(tokens) {
			end = tokens[i+1][0]
		}

		segment := lower[token[1]:end]
		if loc := terminatorRe.FindStringIndex(segment); loc != nil {
			segment = segment[:loc[0]]
		}

		item := strings.TrimSpace(strings.Trim(strings.TrimSpace(segment), ","))
		if item == "" {
			continue
		}

		pairs = append(pairs, orderPair{
			Quantity: quantity,
			Item:     item,
		})
	}

	return pairs
}
