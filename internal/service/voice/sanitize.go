package voice

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sandevgo/deskbot/pkg/conv"
)

var (
	markupChars = strings.NewReplacer(
		"*", "", "_", "", "`", "", "#", "", ">", "", "~", "", "[", "", "]", "", "|", "",
		"\ufe0f", "", "\u200d", "",
	)
	rules      = regexp.MustCompile(`[-=]{2,}`)
	whitespace = regexp.MustCompile(`\s+`)
)

// SanitizeSpeech reduces chat text to plain prose for synthesis. Words are
// kept; structure, markup and emoji are dropped.
func SanitizeSpeech(text string) string {
	plain, err := conv.MarkdownToPlainText([]byte(text))
	if err != nil {
		plain = text
	}

	plain = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r) {
			return -1
		}
		return r
	}, plain)
	plain = markupChars.Replace(plain)
	plain = rules.ReplaceAllString(plain, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(plain, " "))
}
