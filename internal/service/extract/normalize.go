package extract

import (
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

// genericValues are model outputs that mean "I don't know". Such values
// are never trusted over a verified contact record.
var genericValues = map[string]struct{}{
	"":             {},
	"unknown":      {},
	"user":         {},
	"unknown user": {},
	"пользователь": {},
	"неизвестно":   {},
}

func IsGeneric(value string) bool {
	_, ok := genericValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Normalize replaces generic name and contact values with the verified
// contact data when it is available.
func Normalize(p *core.BookingPayload, contact *core.ContactRecord) {
	if p == nil || contact == nil {
		return
	}
	if IsGeneric(p.Name) && contact.Name != "" {
		p.Name = contact.Name
	}
	if IsGeneric(p.Contact) && contact.Phone != "" {
		p.Contact = contact.Phone
	}
}
