package line

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// ParseRequest verifies the webhook signature and decodes the event batch
// into the tagged domain representation. The core never sees unverified
// payloads.
func (c *Client) ParseRequest(r *http.Request) ([]domain.InboundEvent, error) {
	events, err := c.bot.ParseRequest(r)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			return nil, domain.ErrInvalidSignature
		}
		return nil, fmt.Errorf("failed to parse webhook request: %w", err)
	}
	return decodeEvents(events), nil
}

// decodeEvents maps SDK events to the domain tagged union, once, at the
// boundary. Unknown kinds are kept (tagged unknown) so the dispatcher can
// count and skip them.
func decodeEvents(events []*linebot.Event) []domain.InboundEvent {
	decoded := make([]domain.InboundEvent, 0, len(events))
	for _, ev := range events {
		e := domain.InboundEvent{
			Kind:       domain.EventUnknown,
			ReplyToken: ev.ReplyToken,
		}
		if ev.Source != nil {
			e.UserID = ev.Source.UserID
		}

		switch ev.Type {
		case linebot.EventTypeFollow:
			e.Kind = domain.EventFollow
		case linebot.EventTypeMessage:
			switch msg := ev.Message.(type) {
			case *linebot.TextMessage:
				e.Kind = domain.EventText
				e.Text = msg.Text
			case *linebot.StickerMessage:
				e.Kind = domain.EventSticker
				e.PackageID = msg.PackageID
				e.StickerID = msg.StickerID
			case *linebot.ImageMessage:
				e.Kind = domain.EventImage
			}
		}

		decoded = append(decoded, e)
	}
	return decoded
}
