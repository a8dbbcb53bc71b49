package conversation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mesabot/app/client/llm"
	"mesabot/app/config"
	"mesabot/app/service/catalog"
	"mesabot/app/service/order"
	"mesabot/app/service/store"

	_ "embed"

	"github.com/samber/do"
)

//go:embed system_prompt.txt
var systemPrompt string

const maxReplyDuration = 30 * time.Second

// Responder produces a free-text completion for the running conversation,
// either whole or as incremental fragments. The assembled streamed text must
// equal the one-shot result.
type Responder interface {
	Complete(ctx context.Context, turns []llm.Turn) (string, error)
	Stream(ctx context.Context, turns []llm.Turn, onFragment func(string)) (string, error)
}

// OrderSink persists finalized orders.
type OrderSink interface {
	Append(record *order.Finalized) error
}

// Service routes one utterance at a time to the catalog, the session's
// ledger, or the fallback responder. Every outcome is a conversational
// message; no path errors out of a session.
type Service struct {
	catalog   *catalog.Catalog
	sink      OrderSink
	responder Responder
	denylist  []string
	rules     []rule
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newService(
		do.MustInvoke[*catalog.Catalog](di),
		do.MustInvoke[*store.Service](di),
		do.MustInvoke[*llm.Client](di),
		cfg.Moderation.Denylist,
	), nil
}

func newService(cat *catalog.Catalog, sink OrderSink, responder Responder, denylist []string) *Service {
	s := &Service{
		catalog:   cat,
		sink:      sink,
		responder: responder,
	}

	for _, word := range denylist {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			s.denylist = append(s.denylist, word)
		}
	}

	s.rules = s.buildRules()

	return s
}

func (s *Service) NewSession() *Session {
	return &Session{
		history: &History{},
		ledger:  order.NewLedger(),
	}
}

// Respond routes one utterance to completion and returns the reply.
func (s *Service) Respond(ctx context.Context, sess *Session, text string) string {
	return s.respond(ctx, sess, text, nil)
}

// RespondStream behaves like Respond but also delivers the reply through
// onFragment: incrementally when the fallback responder streams, as a single
// fragment otherwise. The returned text is identical either way.
func (s *Service) RespondStream(ctx context.Context, sess *Session, text string, onFragment func(string)) string {
	return s.respond(ctx, sess, text, onFragment)
}

func (s *Service) respond(ctx context.Context, sess *Session, text string, onFragment func(string)) string {
	sess.history.Add(llm.RoleUser, text)

	lower := strings.ToLower(strings.TrimSpace(text))

	reply, streamed := s.route(ctx, sess, lower, onFragment)

	if onFragment != nil && !streamed {
		onFragment(reply)
	}

	sess.history.Add(llm.RoleAssistant, reply)

	return reply
}

func (s *Service) route(ctx context.Context, sess *Session, lower string, onFragment func(string)) (string, bool) {
	if word := s.blockedWord(lower); word != "" {
		slog.Info("Utterance blocked by moderation", "word", word)
		return moderationMessage, false
	}

	for _, r := range s.rules {
		if r.matches(lower) {
			return r.handle(ctx, sess, lower), false
		}
	}

	return s.fallbackReply(ctx, sess, onFragment)
}

func (s *Service) blockedWord(lower string) string {
	for _, word := range s.denylist {
		if strings.Contains(lower, word) {
			return word
		}
	}

	return ""
}

func (s *Service) fallbackReply(ctx context.Context, sess *Session, onFragment func(string)) (string, bool) {
	turns := append([]llm.Turn{{Role: llm.RoleSystem, Content: systemPrompt}}, sess.history.Turns()...)

	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	var (
		text string
		err  error
	)

	if onFragment != nil {
		text, err = s.responder.Stream(ctx, turns, onFragment)
	} else {
		text, err = s.responder.Complete(ctx, turns)
	}

	if err != nil {
		slog.Error("Fallback completion failed", "error", err)
		return apologyMessage, false
	}

	if text == "" {
		return apologyMessage, false
	}

	return text, onFragment != nil
}
