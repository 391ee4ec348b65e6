package telegram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/service/command"
	"github.com/sandevgo/deskbot/internal/service/orchestrator"
	"github.com/sandevgo/deskbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

func (b *Bot) ctx(c tele.Context) context.Context {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	return log.WithUser(ctx, userID(c))
}

func userID(c tele.Context) string {
	return strconv.FormatInt(c.Chat().ID, 10)
}

func from(c tele.Context) core.Sender {
	u := c.Sender()
	if u == nil {
		return core.Sender{}
	}
	return core.Sender{Username: u.Username, FullName: fullName(u.FirstName, u.LastName)}
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := b.ctx(c)
	id := userID(c)
	text := strings.TrimSpace(c.Text())

	if strings.HasPrefix(text, "/") {
		b.awaiting.cancel(id)
		return b.handleCommand(ctx, c, text)
	}

	if b.awaiting.take(id) {
		return b.forwardFeedback(ctx, c, text)
	}

	_ = c.Notify(tele.Typing)
	return b.dispatch(ctx, c, core.Inbound{
		UserID: id,
		Kind:   core.InboundText,
		Text:   text,
		From:   from(c),
	})
}

func (b *Bot) handleCommand(ctx context.Context, c tele.Context, text string) error {
	name, _, _ := strings.Cut(strings.TrimPrefix(strings.Fields(text)[0], "/"), "@")
	if name == feedbackCommandName {
		return b.handleFeedbackStart(c)
	}

	reply, ok := b.router.Execute(ctx, userID(c), text)
	if !ok {
		return nil
	}

	var markup *tele.ReplyMarkup
	switch name {
	case "start":
		markup = menu
	case "profile":
		if reply != command.NoProfileText {
			markup = profileMarkup()
		}
	}
	return b.sender.sendMarkdown(ctx, c.Recipient(), reply, markup)
}

func (b *Bot) handleVoice(c tele.Context) error {
	v := c.Message().Voice
	if v == nil {
		return nil
	}
	return b.handleAudioFile(c, &v.File, voiceFormat(v.MIME, ""))
}

func (b *Bot) handleAudio(c tele.Context) error {
	a := c.Message().Audio
	if a == nil {
		return nil
	}
	return b.handleAudioFile(c, &a.File, voiceFormat(a.MIME, a.FileName))
}

func (b *Bot) handleAudioFile(c tele.Context, file *tele.File, format string) error {
	ctx := b.ctx(c)
	logger := log.FromCtx(ctx)
	_ = c.Notify(tele.RecordingAudio)

	rc, err := b.bot.File(file)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download voice")
		return b.emit(ctx, c, []core.Intent{core.TextIntent(orchestrator.TextVoiceUnrecognized)})
	}
	defer rc.Close()

	audio, err := io.ReadAll(rc)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read voice")
		return b.emit(ctx, c, []core.Intent{core.TextIntent(orchestrator.TextVoiceUnrecognized)})
	}

	return b.dispatch(ctx, c, core.Inbound{
		UserID:      userID(c),
		Kind:        core.InboundVoice,
		Audio:       audio,
		AudioFormat: format,
		From:        from(c),
	})
}

func (b *Bot) handleContact(c tele.Context) error {
	ctx := b.ctx(c)
	ct := c.Message().Contact
	if ct == nil {
		return nil
	}
	if u := c.Sender(); u != nil && ct.UserID != 0 && ct.UserID != u.ID {
		return c.Send(textForeignContact)
	}

	return b.dispatch(ctx, c, core.Inbound{
		UserID: userID(c),
		Kind:   core.InboundContact,
		Contact: &core.ContactRecord{
			Name:  fullName(ct.FirstName, ct.LastName),
			Phone: ct.PhoneNumber,
		},
		From: from(c),
	})
}

func (b *Bot) handleUnsupported(c tele.Context) error {
	return c.Send(textUnsupported)
}

func (b *Bot) handleFAQ(c tele.Context) error {
	return c.Send(textFAQ, faqMarkup())
}

func (b *Bot) faqAnswer(md string) tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond()
		return b.sender.sendMarkdown(b.ctx(c), c.Recipient(), md, nil)
	}
}

func (b *Bot) handleAbout(c tele.Context) error {
	return b.sender.sendMarkdown(b.ctx(c), c.Recipient(), textAbout, nil)
}

func (b *Bot) handleProfile(c tele.Context) error {
	return b.handleCommand(b.ctx(c), c, "/profile")
}

func (b *Bot) handleFeedbackStart(c tele.Context) error {
	if !b.operator.Configured() {
		return c.Send(textFeedbackNoAdmin)
	}
	b.awaiting.set(userID(c))
	return c.Send(textFeedbackPrompt)
}

func (b *Bot) forwardFeedback(ctx context.Context, c tele.Context, text string) error {
	err := b.desk.Feedback(ctx, userID(c), from(c), text)
	switch {
	case err == nil:
		return c.Send(textFeedbackSent)
	case errors.Is(err, orchestrator.ErrOperatorNotConfigured):
		return c.Send(textFeedbackNoAdmin)
	default:
		log.FromCtx(ctx).Error().Err(err).Msg("failed to forward feedback")
		return c.Send(textFeedbackFailed)
	}
}

func (b *Bot) handleApprove(c tele.Context) error {
	ctx := b.ctx(c)
	intents, err := b.desk.Handle(ctx, core.Inbound{
		UserID:    userID(c),
		Kind:      core.InboundApproval,
		BookingID: c.Callback().Data,
		From:      from(c),
	})
	if err != nil || len(intents) == 0 {
		log.FromCtx(ctx).Error().Err(err).Msg("approval not handled")
		return c.Respond(&tele.CallbackResponse{Text: orchestrator.TextBookingFailed, ShowAlert: true})
	}

	text := intents[0].Text
	if !strings.HasPrefix(text, orchestrator.TextBookingSent) {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}

	if err := c.Edit(text, &tele.ReplyMarkup{}); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to update booking card")
	}
	return c.Respond(&tele.CallbackResponse{Text: textSent})
}

func (b *Bot) handleDeleteProfile(c tele.Context) error {
	ctx := b.ctx(c)
	_ = c.Respond()

	deleted, err := b.desk.DeleteProfile(ctx, userID(c))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to delete profile")
	}
	if err != nil || !deleted {
		return c.Edit(textProfileMissing)
	}
	return c.Edit(textProfileDeleted)
}

func (b *Bot) dispatch(ctx context.Context, c tele.Context, in core.Inbound) error {
	intents, err := b.desk.Handle(ctx, in)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("kind", string(in.Kind)).Msg("inbound not handled")
		return nil
	}
	return b.emit(ctx, c, intents)
}

// emit delivers intents in order. A failed intent is logged and the rest
// still go out.
func (b *Bot) emit(ctx context.Context, c tele.Context, intents []core.Intent) error {
	logger := log.FromCtx(ctx)
	to := c.Recipient()

	for _, in := range intents {
		var err error
		switch in.Kind {
		case core.IntentText:
			err = b.sender.sendMarkdown(ctx, to, in.Text, nil)
		case core.IntentVoice:
			_, err = b.bot.Send(to, &tele.Voice{File: tele.FromReader(bytes.NewReader(in.Audio)), MIME: "audio/ogg"})
		case core.IntentCard:
			if in.Card == nil {
				continue
			}
			err = b.sender.sendPlain(to, cardText(*in.Card), actionMarkup(in.Actions))
		}
		if err != nil {
			logger.Error().Err(err).Str("intent", string(in.Kind)).Msg("failed to deliver intent")
		}
	}
	return nil
}

// voiceFormat guesses the container from the MIME type or the file name.
func voiceFormat(mime, filename string) string {
	if ext := strings.TrimPrefix(path.Ext(filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	switch strings.ToLower(mime) {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/wav", "audio/x-wav":
		return "wav"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return "m4a"
	case "audio/webm":
		return "webm"
	default:
		return "ogg"
	}
}
