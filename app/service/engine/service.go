package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"mesabot/app/config"
	"mesabot/app/service/conversation"
	"mesabot/app/service/queue"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const greeting = "¡Bienvenido a nuestro restaurante virtual! Estoy aquí para ayudarte con cualquier pregunta sobre nuestro menú, entregas, o para tomar tu pedido. ¿En qué puedo asistirte hoy?"

// Service runs the conversational surface: one free-text line in, one
// response out. Utterances are processed strictly sequentially; a routing
// pass (including any fallback call) finishes before the next line is taken.
type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		queueSvc:        do.MustInvoke[*queue.Service](di),
	}, nil
}

func (s *Service) Run(ctx context.Context) {
	sess := s.conversationSvc.NewSession()

	fmt.Println(greeting)
	fmt.Println()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.readLines(ctx)
	})

	g.Go(func() error {
		return s.processLoop(ctx, sess)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		slog.Error("Engine stopped", "error", err)
	}
}

func (s *Service) readLines(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return io.EOF
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		s.queueSvc.Add(text)
	}
}

func (s *Service) processLoop(ctx context.Context, sess *conversation.Session) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text, ok := <-s.queueSvc.Channel():
			if !ok {
				return context.Canceled
			}

			start := time.Now()
			s.processUtterance(ctx, sess, text)

			slog.Debug("Processed utterance",
				"text", text,
				"duration", time.Since(start),
			)
		}
	}
}

func (s *Service) processUtterance(ctx context.Context, sess *conversation.Session, text string) {
	if s.cfg.OpenAI.Stream {
		s.conversationSvc.RespondStream(ctx, sess, text, func(fragment string) {
			fmt.Print(fragment)
		})
		fmt.Println()
		fmt.Println()

		return
	}

	reply := s.conversationSvc.Respond(ctx, sess, text)
	fmt.Println(reply)
	fmt.Println()
}
