package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mesabot/app/config"
	"mesabot/app/service/order"

	"github.com/samber/do"
)

// Service is the append-only sink for finalized orders: one JSON record per
// line. The mutex serializes writers so simultaneous confirms from several
// sessions cannot interleave records, and O_APPEND writes never touch prior
// records.
type Service struct {
	path string
	mu   sync.Mutex
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewWithPath(cfg.Data.OrdersPath)
}

func NewWithPath(path string) (*Service, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create order store directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}
	defer file.Close()

	return &Service{path: path}, nil
}

// Append writes one finalized order record.
func (s *Service) Append(record *order.Finalized) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open order store: %w", err)
	}
	defer file.Close()

	if _, err = file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write order record: %w", err)
	}

	slog.Info("Recorded finalized order",
		"lines", len(record.Lines),
		"total", record.Total,
	)

	return nil
}

// ReadAll returns every stored record in append order.
func (s *Service) ReadAll() ([]order.Finalized, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}
	defer file.Close()

	var records []order.Finalized

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record order.Finalized
		if err = json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("failed to parse order record: %w", err)
		}

		records = append(records, record)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading order store: %w", err)
	}

	return records, nil
}
