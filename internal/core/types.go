package core

import "time"

const (
	DeskName          = "DeskBot"
	DeskUserAgent     = "DeskBot/0.1"
	DeskRepositoryURL = "https://github.com/sandevgo/deskbot"
	DeskVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a session. Turns are never mutated after append.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Persona is the session-stable tone of the assistant for one user.
type Persona struct {
	Mood      string `json:"mood"`
	Style     string `json:"style"`
	Reasoning string `json:"reasoning"`
}

// ContactRecord is verified contact data shared by the user. It wins over
// anything the model generates.
type ContactRecord struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingPayload is a lead extracted from model output. It lives only until
// the user approves or abandons the confirmation card.
type BookingPayload struct {
	Name      string `json:"name"`
	Service   string `json:"service"`
	Topic     string `json:"topic"`
	Contact   string `json:"contact"`
	Confirmed bool   `json:"booking_confirmed"`
}

// Booking is an approved lead persisted after it reached the operator.
type Booking struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Username  string         `json:"username,omitempty"`
	FullName  string         `json:"full_name,omitempty"`
	Payload   BookingPayload `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// Service is one entry of the price list shown to the model.
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PriceRange  string `json:"price_range"`
	Description string `json:"description"`
}

type CompletionParams struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	TopP        float64 `json:"top_p" yaml:"top_p"`
}

// Summary renders the payload as the key: value lines shown to the user
// and the operator.
func (p BookingPayload) Summary() string {
	return "Name: " + p.Name +
		"\nService: " + p.Service +
		"\nTopic: " + p.Topic +
		"\nContact: " + p.Contact
}
