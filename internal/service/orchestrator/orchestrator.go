package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/service/extract"
	"github.com/sandevgo/deskbot/internal/service/history"
	"github.com/sandevgo/deskbot/internal/service/persona"
	"github.com/sandevgo/deskbot/internal/service/prompt"
	"github.com/sandevgo/deskbot/internal/service/ratelimit"
	"github.com/sandevgo/deskbot/pkg/keylock"
	"github.com/sandevgo/deskbot/pkg/log"
	"github.com/sandevgo/deskbot/pkg/retry"
	"github.com/sandevgo/deskbot/pkg/tokens"
)

// Voice is the speech side of a conversation.
type Voice interface {
	TranscribeInbound(ctx context.Context, audio []byte, format string) (string, bool)
	SynthesizeOutbound(ctx context.Context, text, mood string) ([]byte, bool)
}

// ContextSource renders the service catalog for the system prompt.
type ContextSource interface {
	ContextText(ctx context.Context) (string, error)
}

// Operator is the human who receives approved bookings and feedback.
type Operator interface {
	Configured() bool
	ForwardBooking(ctx context.Context, b core.Booking) error
	ForwardFeedback(ctx context.Context, userID string, from core.Sender, text string) error
}

type Deps struct {
	Limiter   *ratelimit.Limiter
	History   *history.History
	Personas  *persona.Store
	Assembler *prompt.Assembler
	Extractor *extract.Extractor

	Backend core.Completer
	Params  core.CompletionParams
	Stream  bool
	Timeout time.Duration

	// Optional collaborators. A nil Voice disables voice replies.
	Voice    Voice
	Contacts core.ContactStore
	Catalog  ContextSource
	Bookings core.BookingStore
	Operator Operator
	Retrier  *retry.Retrier
}

type Orchestrator struct {
	Deps

	locks   *keylock.KeyLock
	pending *pendingSet
	now     func() time.Time
}

func New(deps Deps) *Orchestrator {
	if deps.Retrier == nil {
		deps.Retrier = retry.NewDefaultRetrier()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 60 * time.Second
	}
	return &Orchestrator{
		Deps:    deps,
		locks:   keylock.New(),
		pending: newPendingSet(),
		now:     time.Now,
	}
}

// Handle runs one inbound event to completion and returns what the
// transport should emit. Backend and speech failures degrade into
// intents; an error means the event could not be handled at all.
func (o *Orchestrator) Handle(ctx context.Context, in core.Inbound) ([]core.Intent, error) {
	ctx = log.WithUser(ctx, in.UserID)

	switch in.Kind {
	case core.InboundApproval:
		return o.handleApproval(ctx, in), nil
	case core.InboundText, core.InboundVoice, core.InboundContact:
	default:
		return nil, fmt.Errorf("unsupported inbound kind %q", in.Kind)
	}

	if !o.Limiter.Allow(in.UserID, o.now()) {
		log.FromCtx(ctx).Debug().Str("kind", string(in.Kind)).Msg("rate limited, dropping")
		return nil, nil
	}

	unlock, err := o.locks.Lock(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if in.Kind == core.InboundContact {
		return o.shareContact(ctx, in), nil
	}
	return o.converse(ctx, in), nil
}

func (o *Orchestrator) converse(ctx context.Context, in core.Inbound) []core.Intent {
	logger := log.FromCtx(ctx)
	voice := in.Kind == core.InboundVoice

	text := in.Text
	if voice {
		if o.Voice == nil {
			return []core.Intent{core.TextIntent(TextVoiceUnrecognized)}
		}
		transcript, ok := o.Voice.TranscribeInbound(ctx, in.Audio, in.AudioFormat)
		if !ok {
			return []core.Intent{core.TextIntent(TextVoiceUnrecognized)}
		}
		logger.Debug().Str("transcript", transcript).Msg("voice transcribed")
		text = transcript
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	o.History.Append(in.UserID, core.Turn{Role: core.RoleUser, Content: text})

	contact := o.lookupContact(ctx, in.UserID)
	turns := o.History.Get(in.UserID)
	if contact != nil {
		note := core.Turn{Role: core.RoleSystem, Content: contactNote(contact.Name, contact.Phone)}
		turns = append([]core.Turn{note}, turns...)
	}

	p := o.Personas.GetOrCreate(in.UserID)
	system := o.Assembler.Build(p, o.contextText(ctx))

	if logger.Debug().Enabled() {
		n := tokens.Count(system)
		for _, t := range turns {
			n += tokens.Count(t.Content)
		}
		logger.Debug().
			Int("prompt_tokens", n).
			Int("turns", len(turns)).
			Str("mood", p.Mood).
			Str("style", p.Style).
			Str("reasoning", p.Reasoning).
			Msg("calling backend")
	}

	raw, err := o.complete(ctx, system, turns, in.OnChunk)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		logger.Error().Err(err).Msg("backend call failed")
		return []core.Intent{core.TextIntent(TextApology)}
	}

	// The model keeps its own memory of having confirmed a booking.
	o.History.Append(in.UserID, core.Turn{Role: core.RoleAssistant, Content: raw})

	res := o.Extractor.Extract(ctx, raw, contact)

	var intents []core.Intent
	if visible := strings.TrimSpace(extract.Sanitize(res.Visible)); visible != "" {
		if voice {
			if audio, ok := o.Voice.SynthesizeOutbound(ctx, visible, p.Mood); ok {
				intents = append(intents, core.Intent{Kind: core.IntentVoice, Audio: audio})
			}
		}
		intents = append(intents, core.TextIntent(visible))
	}

	if res.Payload != nil {
		ref := o.pending.add(in.UserID, *res.Payload, o.now())
		card := *res.Payload
		intents = append(intents, core.Intent{
			Kind:    core.IntentCard,
			Card:    &card,
			Actions: []core.Action{{Name: core.ActionApprove, Ref: ref, Label: LabelApprove}},
		})
		logger.Info().Str("booking_id", ref).Str("service", card.Service).Msg("booking awaiting approval")
	}

	return intents
}

func (o *Orchestrator) complete(ctx context.Context, system string, turns []core.Turn, onChunk func(string)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	if o.Stream {
		if s, ok := o.Backend.(core.Streamer); ok {
			if onChunk == nil {
				onChunk = func(string) {}
			}
			return s.Stream(ctx, system, turns, o.Params, onChunk)
		}
	}
	return o.Backend.Complete(ctx, system, turns, o.Params)
}

func (o *Orchestrator) lookupContact(ctx context.Context, userID string) *core.ContactRecord {
	if o.Contacts == nil {
		return nil
	}
	rec, err := o.Contacts.GetContact(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("contact lookup failed")
		return nil
	}
	return rec
}

func (o *Orchestrator) contextText(ctx context.Context) string {
	if o.Catalog == nil {
		return catalogUnavailable
	}
	text, err := o.Catalog.ContextText(ctx)
	if err != nil || strings.TrimSpace(text) == "" {
		log.FromCtx(ctx).Warn().Err(err).Msg("catalog unavailable")
		return catalogUnavailable
	}
	return text
}

func (o *Orchestrator) shareContact(ctx context.Context, in core.Inbound) []core.Intent {
	if in.Contact == nil || o.Contacts == nil {
		return []core.Intent{core.TextIntent(TextContactFailed)}
	}

	rec := *in.Contact
	rec.UpdatedAt = o.now()
	if err := o.Contacts.SaveContact(ctx, in.UserID, rec); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save contact")
		return []core.Intent{core.TextIntent(TextContactFailed)}
	}

	o.History.Append(in.UserID, core.Turn{Role: core.RoleUser, Content: sharedContactTurn(rec.Name, rec.Phone)})
	log.FromCtx(ctx).Info().Msg("contact saved")
	return []core.Intent{core.TextIntent(TextContactSaved)}
}

func (o *Orchestrator) handleApproval(ctx context.Context, in core.Inbound) []core.Intent {
	b, err := o.Approve(ctx, in.UserID, in.BookingID, in.From)
	switch {
	case err == nil:
		return []core.Intent{core.TextIntent(TextBookingSent + "\n\n" + b.Payload.Summary())}
	case errors.Is(err, ErrOperatorNotConfigured):
		return []core.Intent{core.TextIntent(TextNotConfigured)}
	case errors.Is(err, ErrBookingNotFound):
		return []core.Intent{core.TextIntent(TextBookingExpired)}
	default:
		log.FromCtx(ctx).Error().Err(err).Str("booking_id", in.BookingID).Msg("booking forward failed")
		return []core.Intent{core.TextIntent(TextBookingFailed)}
	}
}

// Approve forwards a pending booking to the operator and persists it.
// A failed forward leaves the booking pending so the user can retry.
func (o *Orchestrator) Approve(ctx context.Context, userID, bookingID string, from core.Sender) (core.Booking, error) {
	if o.Operator == nil || !o.Operator.Configured() {
		return core.Booking{}, ErrOperatorNotConfigured
	}

	pb, ok := o.pending.take(bookingID, userID)
	if !ok {
		return core.Booking{}, ErrBookingNotFound
	}

	b := core.Booking{
		ID:        bookingID,
		UserID:    userID,
		Username:  from.Username,
		FullName:  from.FullName,
		Payload:   pb.payload,
		CreatedAt: o.now(),
	}

	err := o.Retrier.Do(ctx, func() error {
		return o.Operator.ForwardBooking(ctx, b)
	})
	if err != nil {
		o.pending.restore(bookingID, pb)
		return core.Booking{}, fmt.Errorf("forward booking %s: %w", bookingID, err)
	}

	logger := log.FromCtx(ctx)
	if o.Bookings != nil {
		if err := o.Bookings.SaveBooking(ctx, b); err != nil {
			logger.Error().Err(err).Str("booking_id", bookingID).Msg("failed to persist booking")
		}
	}
	logger.Info().Str("booking_id", bookingID).Msg("booking forwarded to operator")
	return b, nil
}

// Feedback forwards a free-form message to the operator.
func (o *Orchestrator) Feedback(ctx context.Context, userID string, from core.Sender, text string) error {
	if o.Operator == nil || !o.Operator.Configured() {
		return ErrOperatorNotConfigured
	}
	return o.Retrier.Do(ctx, func() error {
		return o.Operator.ForwardFeedback(ctx, userID, from, text)
	})
}

// Clear drops the conversation history of userID.
func (o *Orchestrator) Clear(userID string) {
	o.History.Clear(userID)
}

// Reset starts userID over with a fresh history and a new persona.
func (o *Orchestrator) Reset(userID string) {
	o.History.Clear(userID)
	o.Personas.Reset(userID)
}

func (o *Orchestrator) Profile(ctx context.Context, userID string) (*core.ContactRecord, error) {
	if o.Contacts == nil {
		return nil, nil
	}
	return o.Contacts.GetContact(ctx, userID)
}

func (o *Orchestrator) DeleteProfile(ctx context.Context, userID string) (bool, error) {
	if o.Contacts == nil {
		return false, nil
	}
	return o.Contacts.DeleteContact(ctx, userID)
}

// Sweep evicts identities idle for longer than idle.
func (o *Orchestrator) Sweep(now time.Time, idle time.Duration) (limiter, sessions, personas, bookings int) {
	return o.Limiter.Sweep(now, idle),
		o.History.Sweep(now, idle),
		o.Personas.Sweep(now, idle),
		o.pending.sweep(now, idle)
}
