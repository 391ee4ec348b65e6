package telegram

import (
	"github.com/sandevgo/deskbot/internal/core"
	tele "gopkg.in/telebot.v3"
)

var (
	menu        = &tele.ReplyMarkup{ResizeKeyboard: true}
	btnContact  = menu.Contact("📱 Отправить контакт")
	btnFAQ      = menu.Text("❓ FAQ")
	btnAbout    = menu.Text("ℹ️ О нас")
	btnProfile  = menu.Text("👤 Мой профиль")
	btnFeedback = menu.Text("📩 Обратная связь")

	inline           = &tele.ReplyMarkup{}
	btnApprove       = inline.Data("✅ Все верно, отправить", core.ActionApprove)
	btnDeleteProfile = inline.Data("❌ Удалить мои данные", "delete_profile")
	btnFAQPrices     = inline.Data("💰 Цены", "faq_prices")
	btnFAQTimeline   = inline.Data("⏳ Сроки", "faq_timeline")
	btnFAQContacts   = inline.Data("📞 Контакты", "faq_contacts")
)

func init() {
	menu.Reply(
		menu.Row(btnContact),
		menu.Row(btnFAQ, btnAbout),
		menu.Row(btnProfile, btnFeedback),
	)
}

func faqMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(btnFAQPrices, btnFAQTimeline), m.Row(btnFAQContacts))
	return m
}

func profileMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(btnDeleteProfile))
	return m
}

// actionMarkup renders intent actions as inline buttons.
func actionMarkup(actions []core.Action) *tele.ReplyMarkup {
	if len(actions) == 0 {
		return nil
	}
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, m.Row(m.Data(a.Label, a.Name, a.Ref)))
	}
	m.Inline(rows...)
	return m
}
