package domain

// EventKind tags a decoded webhook event.
type EventKind string

const (
	EventFollow  EventKind = "follow"
	EventText    EventKind = "message:text"
	EventSticker EventKind = "message:sticker"
	EventImage   EventKind = "message:image"
	EventUnknown EventKind = "unknown"
)

// InboundEvent is one webhook event, decoded once at the boundary.
// Only the fields relevant to its kind are set.
type InboundEvent struct {
	Kind       EventKind
	UserID     string
	ReplyToken string

	// Text is the message body (EventText).
	Text string

	// PackageID and StickerID identify the received sticker (EventSticker).
	PackageID string
	StickerID string
}

// Profile is the platform profile of a user.
type Profile struct {
	UserID      string
	DisplayName string
	PictureURL  string
}
