// Package line adapts the LINE Messaging API to the nomibot ports.
package line

import (
	"context"
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// altTextLimit is the platform cap on template alt text.
const altTextLimit = 400

// Client implements ports.Replier and webhook parsing over the LINE SDK.
type Client struct {
	bot *linebot.Client
}

// New creates a LINE client from channel credentials.
func New(channelSecret, channelAccessToken string) (*Client, error) {
	bot, err := linebot.New(channelSecret, channelAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create line client: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Reply delivers the messages for the given reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []domain.Message) error {
	sending := make([]linebot.SendingMessage, 0, len(messages))
	for _, m := range messages {
		sending = append(sending, toSendingMessage(m))
	}
	if _, err := c.bot.ReplyMessage(replyToken, sending...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// Profile fetches the platform profile of a user.
func (c *Client) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	res, err := c.bot.GetProfile(userID).WithContext(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &domain.Profile{
		UserID:      res.UserID,
		DisplayName: res.DisplayName,
		PictureURL:  res.PictureURL,
	}, nil
}

// toSendingMessage maps a neutral message to its LINE wire representation.
func toSendingMessage(m domain.Message) linebot.SendingMessage {
	switch m.Kind {
	case domain.MessageButtons:
		actions := make([]linebot.TemplateAction, 0, len(m.Buttons))
		for _, b := range m.Buttons {
			actions = append(actions, linebot.NewMessageAction(b.Label, b.Text))
		}
		template := linebot.NewButtonsTemplate("", "", m.Text, actions...)
		return linebot.NewTemplateMessage(altText(m), template)

	case domain.MessageConfirm:
		// The confirm template carries exactly two actions.
		left := linebot.NewMessageAction(m.Buttons[0].Label, m.Buttons[0].Text)
		right := linebot.NewMessageAction(m.Buttons[1].Label, m.Buttons[1].Text)
		template := linebot.NewConfirmTemplate(m.Text, left, right)
		return linebot.NewTemplateMessage(altText(m), template)

	case domain.MessageSticker:
		return linebot.NewStickerMessage(m.PackageID, m.StickerID)

	default:
		return linebot.NewTextMessage(m.Text)
	}
}

func altText(m domain.Message) string {
	alt := m.AltText
	if alt == "" {
		alt = m.Text
	}
	runes := []rune(alt)
	if len(runes) > altTextLimit {
		alt = string(runes[:altTextLimit])
	}
	return alt
}
