package telegram

import (
	"context"
	"errors"
	"net/http"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

// Operator delivers leads and feedback to the admin chat.
type Operator struct {
	sender *sender
	chat   *tele.Chat
}

// NewOperator sends to adminChatID. Zero leaves the operator unconfigured.
func NewOperator(bot messenger, adminChatID int64) *Operator {
	o := &Operator{sender: newSender(bot)}
	if adminChatID != 0 {
		o.chat = &tele.Chat{ID: adminChatID}
	}
	return o
}

func (o *Operator) Configured() bool {
	return o.chat != nil
}

func (o *Operator) ForwardBooking(ctx context.Context, b core.Booking) error {
	return classify(o.sender.sendMarkdown(ctx, o.chat, bookingText(b), nil))
}

func (o *Operator) ForwardFeedback(ctx context.Context, userID string, from core.Sender, text string) error {
	return classify(o.sender.sendMarkdown(ctx, o.chat, feedbackText(userID, from, text), nil))
}

// classify marks client errors other than flood control as not worth retrying.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) &&
		apiErr.Code >= 400 && apiErr.Code < 500 &&
		apiErr.Code != http.StatusTooManyRequests {
		return retry.Permanent(err)
	}
	return err
}
