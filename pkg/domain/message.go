package domain

// MessageKind defines the shape of an outbound reply message.
type MessageKind string

const (
	MessageText    MessageKind = "text"
	MessageButtons MessageKind = "buttons"
	MessageConfirm MessageKind = "confirm"
	MessageSticker MessageKind = "sticker"
)

// Button is one selectable action inside a buttons or confirm message.
type Button struct {
	// Label is the visible text on the button.
	Label string
	// Text is the message sent back when the button is tapped.
	Text string
}

// Message is a platform-neutral reply payload. The messaging adapter maps
// it to the concrete wire format.
type Message struct {
	Kind MessageKind

	// Text is the body for text messages, or the template text for
	// buttons/confirm messages.
	Text string

	// AltText is the notification fallback for template messages.
	AltText string

	// Buttons holds the actions for buttons/confirm messages. Confirm
	// messages carry exactly two.
	Buttons []Button

	// PackageID and StickerID identify an echoed sticker.
	PackageID string
	StickerID string
}

// NewTextMessage builds a plain text message.
func NewTextMessage(text string) Message {
	return Message{Kind: MessageText, Text: text}
}
