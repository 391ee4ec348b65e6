package extract

import (
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

const (
	blockStart = "SUMMARY_BLOCK:"
	blockEnd   = "END_SUMMARY_BLOCK"
)

// parseBlock recognises the legacy delimited form:
//
//	SUMMARY_BLOCK:
//	Name: ...
//	END_SUMMARY_BLOCK
//
// A complete block is always a confirmed booking.
func parseBlock(raw string) (*match, error) {
	start := strings.Index(raw, blockStart)
	if start < 0 {
		return nil, nil
	}
	bodyStart := start + len(blockStart)
	rel := strings.Index(raw[bodyStart:], blockEnd)
	if rel < 0 {
		return nil, nil
	}
	bodyEnd := bodyStart + rel

	p := core.BookingPayload{Confirmed: true}
	for _, line := range strings.Split(raw[bodyStart:bodyEnd], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			p.Name = value
		case "service":
			p.Service = value
		case "topic":
			p.Topic = value
		case "contact":
			p.Contact = value
		}
	}

	return &match{start: start, end: bodyEnd + len(blockEnd), payload: p}, nil
}
