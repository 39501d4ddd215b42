package line

import (
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

func TestToSendingMessage_Text(t *testing.T) {
	msg := toSendingMessage(domain.NewTextMessage("こんばんは"))

	text, ok := msg.(*linebot.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "こんばんは", text.Text)
}

func TestToSendingMessage_Buttons(t *testing.T) {
	msg := toSendingMessage(domain.Message{
		Kind: domain.MessageButtons,
		Text: "どうする？",
		Buttons: []domain.Button{
			{Label: "1. ビール", Text: "1"},
			{Label: "2. サワー", Text: "2"},
			{Label: "3. お茶", Text: "3"},
		},
	})

	tmpl, ok := msg.(*linebot.TemplateMessage)
	require.True(t, ok)
	assert.Equal(t, "どうする？", tmpl.AltText)

	buttons, ok := tmpl.Template.(*linebot.ButtonsTemplate)
	require.True(t, ok)
	assert.Equal(t, "どうする？", buttons.Text)
	require.Len(t, buttons.Actions, 3)

	action, ok := buttons.Actions[0].(*linebot.MessageAction)
	require.True(t, ok)
	assert.Equal(t, "1. ビール", action.Label)
	assert.Equal(t, "1", action.Text)
}

func TestToSendingMessage_Confirm(t *testing.T) {
	msg := toSendingMessage(domain.Message{
		Kind: domain.MessageConfirm,
		Text: "もう一杯いく？",
		Buttons: []domain.Button{
			{Label: "はい", Text: "1"},
			{Label: "いいえ", Text: "2"},
		},
	})

	tmpl, ok := msg.(*linebot.TemplateMessage)
	require.True(t, ok)

	confirm, ok := tmpl.Template.(*linebot.ConfirmTemplate)
	require.True(t, ok)
	assert.Equal(t, "もう一杯いく？", confirm.Text)
	require.Len(t, confirm.Actions, 2)
}

func TestToSendingMessage_Sticker(t *testing.T) {
	msg := toSendingMessage(domain.Message{
		Kind:      domain.MessageSticker,
		PackageID: "11537",
		StickerID: "52002734",
	})

	sticker, ok := msg.(*linebot.StickerMessage)
	require.True(t, ok)
	assert.Equal(t, "11537", sticker.PackageID)
	assert.Equal(t, "52002734", sticker.StickerID)
}

func TestAltText_Truncated(t *testing.T) {
	long := strings.Repeat("あ", 500)
	alt := altText(domain.Message{Kind: domain.MessageButtons, Text: long})
	assert.Len(t, []rune(alt), altTextLimit)
}

func TestDecodeEvents(t *testing.T) {
	events := []*linebot.Event{
		{
			Type:       linebot.EventTypeFollow,
			ReplyToken: "t1",
			Source:     &linebot.EventSource{UserID: "U1"},
		},
		{
			Type:       linebot.EventTypeMessage,
			ReplyToken: "t2",
			Source:     &linebot.EventSource{UserID: "U2"},
			Message:    &linebot.TextMessage{Text: "1"},
		},
		{
			Type:       linebot.EventTypeMessage,
			ReplyToken: "t3",
			Source:     &linebot.EventSource{UserID: "U3"},
			Message:    &linebot.StickerMessage{PackageID: "11537", StickerID: "52002734"},
		},
		{
			Type:       linebot.EventTypeMessage,
			ReplyToken: "t4",
			Source:     &linebot.EventSource{UserID: "U4"},
			Message:    &linebot.ImageMessage{},
		},
		{
			Type:       linebot.EventTypeUnfollow,
			ReplyToken: "",
			Source:     &linebot.EventSource{UserID: "U5"},
		},
	}

	decoded := decodeEvents(events)
	require.Len(t, decoded, 5)

	assert.Equal(t, domain.EventFollow, decoded[0].Kind)
	assert.Equal(t, "U1", decoded[0].UserID)

	assert.Equal(t, domain.EventText, decoded[1].Kind)
	assert.Equal(t, "1", decoded[1].Text)

	assert.Equal(t, domain.EventSticker, decoded[2].Kind)
	assert.Equal(t, "11537", decoded[2].PackageID)

	assert.Equal(t, domain.EventImage, decoded[3].Kind)

	assert.Equal(t, domain.EventUnknown, decoded[4].Kind)
}
