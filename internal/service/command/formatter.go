package command

import (
	"fmt"
	"strings"
)

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("🛠 **%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ %s\n", message)
}

// Error reports a failed command without internal detail unless the error
// is meant for the user.
func (f *ResponseFormatter) Error(command string, err error) string {
	var userErr *UserError
	if asUserError(err, &userErr) {
		return fmt.Sprintf("❌ %s\n", userErr.Message)
	}
	return fmt.Sprintf("❌ Не удалось выполнить /%s. Попробуйте позже.\n", command)
}

func (f *ResponseFormatter) Unknown(command string) string {
	return fmt.Sprintf("❓ Неизвестная команда: /%s\nСписок команд: /help\n", command)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("%s: %s\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("Использование: %s\n", command)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.TrimSpace(strings.Join(sections, "\n"))
}
