package core

type InboundKind string

const (
	InboundText     InboundKind = "text"
	InboundVoice    InboundKind = "voice"
	InboundContact  InboundKind = "contact-share"
	InboundApproval InboundKind = "approval-click"
)

// Sender describes who wrote an inbound event, for operator messages.
type Sender struct {
	Username string
	FullName string
}

// Inbound is one event delivered by a transport.
type Inbound struct {
	UserID      string
	Kind        InboundKind
	Text        string
	Audio       []byte
	AudioFormat string
	Contact     *ContactRecord
	BookingID   string
	From        Sender

	// OnChunk, when set, receives streamed completion chunks in order.
	OnChunk func(chunk string)
}

type IntentKind string

const (
	IntentText  IntentKind = "text"
	IntentVoice IntentKind = "voice"
	IntentCard  IntentKind = "confirmation-card"
)

const ActionApprove = "approve"

// Action is a button attached to an intent. Ref identifies its target.
type Action struct {
	Name  string
	Ref   string
	Label string
}

// Intent is one outbound instruction for a transport.
type Intent struct {
	Kind    IntentKind
	Text    string
	Audio   []byte
	Card    *BookingPayload
	Actions []Action
}

func TextIntent(text string) Intent {
	return Intent{Kind: IntentText, Text: text}
}
