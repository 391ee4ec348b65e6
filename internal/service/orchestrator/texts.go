package orchestrator

// User-facing replies. Internal errors never reach users verbatim.
const (
	TextApology           = "Извините, сейчас я не могу ответить. Пожалуйста, попробуйте позже."
	TextVoiceUnrecognized = "Не удалось распознать голосовое сообщение. Попробуйте еще раз или напишите текстом."
	TextContactSaved      = "Спасибо! Я сохранил ваш контакт. Чем я могу вам помочь?"
	TextContactFailed     = "❌ Не удалось сохранить контакт. Попробуйте позже."
	TextNotConfigured     = "Ошибка конфигурации: Админ не настроен."
	TextBookingExpired    = "Заявка устарела. Пожалуйста, оформите ее заново."
	TextBookingFailed     = "Ошибка отправки. Попробуйте позже."
	TextBookingSent       = "✅ Спасибо! Ваша заявка отправлена."
	LabelApprove          = "✅ Все верно, отправить"

	catalogUnavailable = "Информация о ценах временно недоступна. Предложи пользователю уточнить детали у менеджера."
)

func contactNote(name, phone string) string {
	return "[System Note: The user's verified contact details are:\n" +
		"Name: " + name + "\n" +
		"Phone: " + phone + "\n" +
		"Please use these details when filling out the booking form if needed.]"
}

func sharedContactTurn(name, phone string) string {
	return "[System: User shared contact card]\n" +
		"My contact info: Name=" + name + ", Phone=" + phone
}
