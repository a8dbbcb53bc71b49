package queue

import (
	"log/slog"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service buffers incoming utterances between the surface and the engine.
// The engine drains it strictly sequentially.
type Service struct {
	queue chan string
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan string, bufferSize),
	}, nil
}

func (s *Service) Add(text string) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	select {
	case s.queue <- text:
	default:
		slog.Warn("utterance queue is full")
	}
}

func (s *Service) Channel() <-chan string {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
