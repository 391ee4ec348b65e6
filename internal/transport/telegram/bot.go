package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Desk is the conversation core the bot drives.
type Desk interface {
	Handle(ctx context.Context, in core.Inbound) ([]core.Intent, error)
	Feedback(ctx context.Context, userID string, from core.Sender, text string) error
	DeleteProfile(ctx context.Context, userID string) (bool, error)
}

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	desk     Desk
	router   core.CmdRouter
	operator *Operator
	sender   *sender
	awaiting *awaiting
}

// NewClient connects to the Bot API. It is separate from NewBot so the
// operator can be built before the conversation core.
func NewClient(cfg *config.TelegramConfig) (*tele.Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

func NewBot(
	ctx context.Context,
	b *tele.Bot,
	cfg *config.TelegramConfig,
	desk Desk,
	router core.CmdRouter,
	operator *Operator,
) *Bot {
	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		desk:     desk,
		router:   router,
		operator: operator,
		sender:   newSender(b),
		awaiting: newAwaiting(10 * time.Minute),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnVoice, bot.handleVoice)
	b.Handle(tele.OnAudio, bot.handleAudio)
	b.Handle(tele.OnContact, bot.handleContact)
	b.Handle(tele.OnSticker, bot.handleUnsupported)
	b.Handle(tele.OnPhoto, bot.handleUnsupported)

	b.Handle(&btnFAQ, bot.handleFAQ)
	b.Handle(&btnAbout, bot.handleAbout)
	b.Handle(&btnProfile, bot.handleProfile)
	b.Handle(&btnFeedback, bot.handleFeedbackStart)

	b.Handle(&btnApprove, bot.handleApprove)
	b.Handle(&btnDeleteProfile, bot.handleDeleteProfile)
	b.Handle(&btnFAQPrices, bot.faqAnswer(textFAQPrices))
	b.Handle(&btnFAQTimeline, bot.faqAnswer(textFAQTimeline))
	b.Handle(&btnFAQContacts, bot.faqAnswer(textFAQContacts))

	return bot
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}
