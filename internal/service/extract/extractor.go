package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
)

// Result is the outcome of one extraction. Payload is nil when the text
// carried no recognised booking.
type Result struct {
	Visible string
	Payload *core.BookingPayload
}

// match is a recognised payload and the byte span it occupies in the raw text.
type match struct {
	start, end int
	payload    core.BookingPayload
}

// parser is one payload convention. err is reported for malformed input
// that looked like a payload; it never aborts extraction.
type parser struct {
	name  string
	parse func(raw string) (*match, error)
}

// Conventions are tried in order and the first match wins.
var parsers = []parser{
	{name: "json", parse: parseJSON},
	{name: "block", parse: parseBlock},
}

var (
	fenceOpen  = regexp.MustCompile("```[A-Za-z0-9_-]*[ \t]*\\n?[ \t\\n]*$")
	fenceClose = regexp.MustCompile("^[ \t\\n]*```")
)

// markup the chat renderer would otherwise interpret; '_' is handled
// separately so identifiers like @dev_team survive
var markupReplacer = strings.NewReplacer("*", "", "`", "", "[", "", "]", "")

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract separates visible text from an embedded booking payload and
// normalizes generic name/contact values against contact.
func (e *Extractor) Extract(ctx context.Context, raw string, contact *core.ContactRecord) Result {
	logger := log.FromCtx(ctx)

	for _, p := range parsers {
		m, err := p.parse(raw)
		if err != nil {
			logger.Warn().Err(err).Str("convention", p.name).Msg("malformed booking payload ignored")
			continue
		}
		if m == nil {
			continue
		}

		start, end := expandFence(raw, m.start, m.end)
		visible := strings.TrimSpace(raw[:start] + raw[end:])
		payload := m.payload
		Normalize(&payload, contact)

		logger.Debug().Str("convention", p.name).Str("service", payload.Service).Msg("booking payload extracted")
		return Result{Visible: visible, Payload: &payload}
	}

	return Result{Visible: raw}
}

// expandFence widens [start,end) to swallow a code fence that would be
// left empty once the payload is removed.
func expandFence(raw string, start, end int) (int, int) {
	open := fenceOpen.FindStringIndex(raw[:start])
	closing := fenceClose.FindStringIndex(raw[end:])
	if open == nil || closing == nil {
		return start, end
	}
	return open[0], end + closing[1]
}

// Sanitize strips characters reserved by the chat renderer's lightweight
// markup. An underscore between two letters or digits is kept.
func Sanitize(text string) string {
	runes := []rune(markupReplacer.Replace(text))

	var sb strings.Builder
	sb.Grow(len(runes))
	for i, r := range runes {
		if r == '_' && !(i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1])) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
