package conversation

import "mesabot/app/client/llm"

const historySize = 20

// History is the bounded, append-only transcript of a session, read by the
// fallback responder.
type History struct {
	turns []llm.Turn
}

func (h *History) Add(role, text string) {
	turn := llm.Turn{
		Role:    role,
		Content: text,
	}

	if len(h.turns) >= historySize {
		h.turns = append(h.turns[1:], turn)
	} else {
		h.turns = append(h.turns, turn)
	}
}

// Turns returns a copy of the transcript in order.
func (h *History) Turns() []llm.Turn {
	result := make([]llm.Turn, len(h.turns))
	copy(result, h.turns)

	return result
}
