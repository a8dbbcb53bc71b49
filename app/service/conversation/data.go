package conversation

import "mesabot/app/service/order"

// Session is the explicit per-conversation context: the running transcript
// and the pending order. Sessions never share ledgers or history; the shared
// read-only catalog lives in the Service.
type Session struct {
	history *History
	ledger  *order.Ledger
}

// Ledger exposes the session's pending order.
func (s *Session) Ledger() *order.Ledger {
	return s.ledger
}
