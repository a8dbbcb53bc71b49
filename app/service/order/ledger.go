package order

import (
	"errors"
	"strings"
	"time"

	"mesabot/app/service/catalog"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotInOrder  = errors.New("item is not in the order")
	ErrEmptyOrder      = errors.New("order is empty")
)

// Ledger accumulates the pending order of a single session. Lines keep their
// insertion order; quantities are always positive, removal deletes the line.
type Ledger struct {
	lines []*Line
	index map[string]*Line
}

func NewLedger() *Ledger {
	return &Ledger{
		index: make(map[string]*Line),
	}
}

// Add creates a line for the item or increments the existing one.
func (l *Ledger) Add(item catalog.MenuItem, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}

	key := strings.ToLower(item.Name)

	line, ok := l.index[key]
	if !ok {
		line = &Line{
			Item:        item.Name,
			ServingSize: item.ServingSize,
		}
		if item.HasPrice {
			price := item.Price
			line.Price = &price
		}

		l.lines = append(l.lines, line)
		l.index[key] = line
	}

	line.Quantity += quantity

	return *line, nil
}

// Remove deletes the line for the named item, matching case-insensitively.
func (l *Ledger) Remove(name string) (Line, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	line, ok := l.index[key]
	if !ok {
		return Line{}, ErrItemNotInOrder
	}

	delete(l.index, key)

	for i := range l.lines {
		if l.lines[i] == line {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			break
		}
	}

	return *line, nil
}

// Total sums quantity times unit price over all priced lines. A catalog
// without prices yields zero, never an error.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero

	for _, line := range l.lines {
		if line.Price == nil {
			continue
		}

		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return total
}

// Lines returns a copy of the pending lines in insertion order.
func (l *Ledger) Lines() []Line {
	result := make([]Line, 0, len(l.lines))
	for _, line := range l.lines {
		result = append(result, *line)
	}

	return result
}

func (l *Ledger) Empty() bool {
	return len(l.lines) == 0
}

// Confirm snapshots the pending lines and clears the ledger. Persisting the
// snapshot is the caller's job.
func (l *Ledger) Confirm(now time.Time) (*Finalized, error) {
	if l.Empty() {
		return nil, ErrEmptyOrder
	}

	snapshot := &Finalized{
		Timestamp: now,
		Lines:     l.Lines(),
		Total:     l.Total(),
	}

	l.clear()

	return snapshot, nil
}

// Cancel clears the ledger unconditionally. It reports false when there was
// nothing to cancel, which is not an error.
func (l *Ledger) Cancel() bool {
	if l.Empty() {
		return false
	}

	l.clear()

	return true
}

func (l *Ledger) clear() {
	l.lines = nil
	l.index = make(map[string]*Line)
}
