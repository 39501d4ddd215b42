// Package dispatcher fans out webhook event batches to the game engine and
// fires the replies.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sakenomibu/nomibot/internal/engine"
	"github.com/sakenomibu/nomibot/internal/logging"
	"github.com/sakenomibu/nomibot/internal/metrics"
	"github.com/sakenomibu/nomibot/internal/render"
	"github.com/sakenomibu/nomibot/pkg/domain"
	"github.com/sakenomibu/nomibot/pkg/ports"
	"github.com/sakenomibu/nomibot/pkg/session"
)

// RestartKeyword is the fixed sentinel that resets a session, recognized
// case-exactly.
const RestartKeyword = "リスタート"

// Fixed command keywords answered without touching the engine.
const (
	commandKeyword  = "コマンド"
	howToKeyword    = "あそびかた"
	commandListText = "コマンド一覧:\n・コマンド\n・あそびかた\n・リスタート"
	howToText       = "遊び方はこちら: https://liff.line.me/2006601390-9yZjDbWP"
)

// Dispatcher resolves each inbound event to a user, advances the session
// under the per-user lock, and fires the reply. Events within one batch are
// processed independently and in parallel; one event's failure never aborts
// the others.
type Dispatcher struct {
	sessions *session.Manager
	engine   *engine.Engine
	renderer *render.Renderer
	replier  ports.Replier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures the dispatcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics enables pipeline counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New creates a dispatcher with explicit collaborators.
func New(sessions *session.Manager, eng *engine.Engine, renderer *render.Renderer, replier ports.Replier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sessions: sessions,
		engine:   eng,
		renderer: renderer,
		replier:  replier,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes one webhook batch. It returns after every event has
// been handled.
func (d *Dispatcher) Dispatch(ctx context.Context, events []domain.InboundEvent) {
	var wg sync.WaitGroup
	for _, ev := range events {
		wg.Add(1)
		go func(ev domain.InboundEvent) {
			defer wg.Done()
			d.handleEvent(ctx, ev)
		}(ev)
	}
	wg.Wait()
}

func (d *Dispatcher) handleEvent(ctx context.Context, ev domain.InboundEvent) {
	d.countEvent(ev.Kind)

	if ev.UserID == "" {
		// Group or room events carry no resolvable user; nothing to do.
		return
	}

	var err error
	switch ev.Kind {
	case domain.EventFollow:
		err = d.handleFollow(ctx, ev)
	case domain.EventText:
		err = d.handleText(ctx, ev)
	case domain.EventSticker:
		err = d.reply(ctx, ev.ReplyToken, []domain.Message{{
			Kind:      domain.MessageSticker,
			PackageID: ev.PackageID,
			StickerID: ev.StickerID,
		}})
	case domain.EventImage:
		err = d.reply(ctx, ev.ReplyToken, d.renderer.ImageAck())
	default:
		return
	}

	if err != nil {
		d.logger.Error("event handling failed",
			"kind", string(ev.Kind),
			"user_id", ev.UserID,
			"err", err,
		)
	}
}

// handleFollow registers the user with a fresh session and greets them with
// the entry phase prompt.
func (d *Dispatcher) handleFollow(ctx context.Context, ev domain.InboundEvent) error {
	displayName := ""
	if profile, err := d.replier.Profile(ctx, ev.UserID); err == nil {
		displayName = profile.DisplayName
	} else {
		d.logger.Warn("profile fetch failed, greeting without a name",
			"user_id", ev.UserID, "err", err)
	}

	fresh := d.engine.NewSession(ev.UserID)
	fresh.DisplayName = displayName

	update := domain.UpdateFrom(fresh)
	update.DisplayName = &displayName
	if err := d.sessions.Merge(ctx, ev.UserID, update); err != nil {
		d.countStoreFailure()
		return fmt.Errorf("failed to register session: %w", err)
	}

	return d.reply(ctx, ev.ReplyToken, d.renderer.Greeting(displayName, d.engine.EntryPhase()))
}

func (d *Dispatcher) handleText(ctx context.Context, ev domain.InboundEvent) error {
	switch ev.Text {
	case RestartKeyword:
		return d.handleRestart(ctx, ev)
	case commandKeyword:
		return d.reply(ctx, ev.ReplyToken, []domain.Message{domain.NewTextMessage(commandListText)})
	case howToKeyword:
		return d.reply(ctx, ev.ReplyToken, []domain.Message{domain.NewTextMessage(howToText)})
	default:
		return d.advance(ctx, ev)
	}
}

// handleRestart is the designated restart entry point: it fully
// re-initializes the session regardless of prior state.
func (d *Dispatcher) handleRestart(ctx context.Context, ev domain.InboundEvent) error {
	fresh := d.engine.NewSession(ev.UserID)
	if err := d.sessions.Merge(ctx, ev.UserID, domain.UpdateFrom(fresh)); err != nil {
		d.countStoreFailure()
		if replyErr := d.reply(ctx, ev.ReplyToken, d.renderer.Fault()); replyErr != nil {
			d.logger.Warn("fault reply failed", "user_id", ev.UserID, "err", replyErr)
		}
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return d.reply(ctx, ev.ReplyToken, d.renderer.Restarted(d.engine.EntryPhase()))
}

// advance runs the read-advance-write cycle under the per-user lock, then
// replies outside of it.
func (d *Dispatcher) advance(ctx context.Context, ev domain.InboundEvent) error {
	var outcome domain.Outcome

	err := d.sessions.WithLock(ctx, ev.UserID, func(ctx context.Context) error {
		store := d.sessions.Store()

		current, err := store.GetOrCreate(ctx, ev.UserID)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		next, out := d.engine.Advance(current, ev.Text)
		outcome = out

		if !sessionChanged(current, next) {
			return nil
		}
		if err := store.Merge(ctx, ev.UserID, domain.UpdateFrom(next)); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		return nil
	})
	if err != nil {
		d.countStoreFailure()
		if replyErr := d.reply(ctx, ev.ReplyToken, d.renderer.Fault()); replyErr != nil {
			d.logger.Warn("fault reply failed", "user_id", ev.UserID, "err", replyErr)
		}
		return err
	}

	d.countOutcome(outcome.Kind)
	return d.reply(ctx, ev.ReplyToken, d.renderer.Outcome(outcome))
}

func (d *Dispatcher) reply(ctx context.Context, replyToken string, messages []domain.Message) error {
	if err := d.replier.Reply(ctx, replyToken, messages); err != nil {
		d.countReplyFailure()
		return err
	}
	return nil
}

// sessionChanged reports whether the advance produced a state worth writing
// back. Reprompt, already-finished and lookup faults leave the record as is.
func sessionChanged(before, after *domain.Session) bool {
	return before.Status != after.Status ||
		before.CurrentPhaseID != after.CurrentPhaseID ||
		before.TotalPoints != after.TotalPoints ||
		len(before.History) != len(after.History)
}

func (d *Dispatcher) countEvent(kind domain.EventKind) {
	if d.metrics != nil {
		d.metrics.EventsTotal.WithLabelValues(string(kind)).Inc()
	}
}

func (d *Dispatcher) countOutcome(kind domain.OutcomeKind) {
	if d.metrics != nil {
		d.metrics.OutcomesTotal.WithLabelValues(string(kind)).Inc()
	}
}

func (d *Dispatcher) countStoreFailure() {
	if d.metrics != nil {
		d.metrics.StoreFailures.Inc()
	}
}

func (d *Dispatcher) countReplyFailure() {
	if d.metrics != nil {
		d.metrics.ReplyFailures.Inc()
	}
}
