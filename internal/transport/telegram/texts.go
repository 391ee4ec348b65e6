package telegram

import (
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

const (
	textAbout = "👨‍💻 **О нас**\n\n" +
		"Мы команда разработчиков, специализирующаяся на создании чат-ботов, веб-сервисов и автоматизации бизнеса.\n" +
		"Наш стек: Python, Go, PostgreSQL, Redis, LLM-интеграции."
	textFAQ         = "Выберите тему:"
	textFAQPrices   = "💰 **Цены:**\n- Простой бот: $100-$300\n- Сложный бот: от $500\n- Консультация: $50/час"
	textFAQTimeline = "⏳ **Сроки:**\n- Простой бот: 3-5 дней\n- Сложный проект: 2+ недели"
	textFAQContacts = "📞 **Контакты:**\nПишите @Lotargo для обсуждения деталей."

	textFeedbackPrompt  = "✍️ Напишите ваше сообщение, и я передам его администратору."
	textFeedbackNoAdmin = "❌ Ошибка: Админ не настроен."
	textFeedbackSent    = "✅ Сообщение отправлено! Мы свяжемся с вами."
	textFeedbackFailed  = "❌ Ошибка отправки."

	textProfileDeleted = "✅ Ваши данные были успешно удалены из базы."
	textProfileMissing = "❌ Ошибка удаления или данные не найдены."
	textForeignContact = "Пожалуйста, отправьте свой собственный контакт."
	textSent           = "Отправлено!"
	textUnsupported    = "Я понимаю текстовые и голосовые сообщения."
)

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func cardText(p core.BookingPayload) string {
	return "📋 Пожалуйста, проверьте данные:\n\n" + p.Summary()
}

func bookingText(b core.Booking) string {
	return "🚀 **Новая заявка!**\n\n" +
		"From: " + senderLine(b.FullName, b.Username) + "\n\n" +
		b.Payload.Summary()
}

func feedbackText(userID string, from core.Sender, text string) string {
	return "📩 **Обратная связь**\n\n" +
		"From: " + senderLine(from.FullName, from.Username) + " [" + userID + "]\n\n" +
		text
}

func senderLine(name, username string) string {
	if name == "" {
		name = "—"
	}
	if username == "" {
		return name
	}
	return name + " (@" + username + ")"
}
