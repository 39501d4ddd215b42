// Package render maps engine outcomes to platform-neutral reply messages.
package render

import (
	"fmt"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// Fixed user-facing texts. Failures stay generic on purpose: internal
// identifiers are never rendered to the end user.
const (
	faultText    = "セッションを読み込めませんでした。しばらくしてからもう一度ためしてね。"
	imageAckText = "画像を受け取りました。"
)

// Renderer builds reply messages for outcomes and phases.
type Renderer struct {
	restartKeyword string
}

// New creates a renderer. The restart keyword appears in closing and
// already-finished messages.
func New(restartKeyword string) *Renderer {
	return &Renderer{restartKeyword: restartKeyword}
}

// Outcome maps an advance outcome to one or more reply messages.
func (r *Renderer) Outcome(o domain.Outcome) []domain.Message {
	switch o.Kind {
	case domain.OutcomeReprompt:
		return []domain.Message{r.Phase(o.Phase)}

	case domain.OutcomeAdvanced:
		return []domain.Message{
			domain.NewTextMessage(r.reactionText(o)),
			r.Phase(o.Phase),
		}

	case domain.OutcomeCompleted:
		text := fmt.Sprintf(
			"%s\n\n飲み会はこれでおしまい！今夜の飲みポイントは %d ポイントでした。\nもう一度あそぶには「%s」と送ってね。",
			o.Reaction, o.TotalPoints, r.restartKeyword,
		)
		return []domain.Message{domain.NewTextMessage(text)}

	case domain.OutcomeAlreadyFinished:
		text := fmt.Sprintf(
			"今夜の飲み会はもう終わってるよ。「%s」と送るともう一度あそべるよ。",
			r.restartKeyword,
		)
		return []domain.Message{domain.NewTextMessage(text)}

	default:
		return []domain.Message{domain.NewTextMessage(faultText)}
	}
}

// Phase renders the prompt plus one button per choice, each button's
// visible text being its 1-based index. A two-choice phase uses the
// platform confirm template instead.
func (r *Renderer) Phase(phase *domain.Phase) domain.Message {
	if len(phase.Choices) == 2 {
		return domain.Message{
			Kind:    domain.MessageConfirm,
			Text:    phase.Prompt,
			AltText: phase.Prompt,
			Buttons: []domain.Button{
				{Label: "はい", Text: "1"},
				{Label: "いいえ", Text: "2"},
			},
		}
	}

	buttons := make([]domain.Button, len(phase.Choices))
	for i, c := range phase.Choices {
		index := fmt.Sprintf("%d", i+1)
		buttons[i] = domain.Button{
			Label: fmt.Sprintf("%s. %s", index, c.Label),
			Text:  index,
		}
	}
	return domain.Message{
		Kind:    domain.MessageButtons,
		Text:    phase.Prompt,
		AltText: phase.Prompt,
		Buttons: buttons,
	}
}

// Greeting renders the follow-up for a newly registered user: a welcome
// text plus the entry phase prompt.
func (r *Renderer) Greeting(displayName string, entry *domain.Phase) []domain.Message {
	text := fmt.Sprintf("%s さん、酒飲み部へようこそ〜！\nさっそく今夜の飲み会をはじめよう。", displayName)
	return []domain.Message{
		domain.NewTextMessage(text),
		r.Phase(entry),
	}
}

// Restarted renders the reply for a fresh restart.
func (r *Renderer) Restarted(entry *domain.Phase) []domain.Message {
	return []domain.Message{
		domain.NewTextMessage("もう一度飲み会のはじまり！"),
		r.Phase(entry),
	}
}

// Fault renders the generic session-unavailable message.
func (r *Renderer) Fault() []domain.Message {
	return []domain.Message{domain.NewTextMessage(faultText)}
}

// ImageAck renders the fixed acknowledgement for image messages.
func (r *Renderer) ImageAck() []domain.Message {
	return []domain.Message{domain.NewTextMessage(imageAckText)}
}

// reactionText appends the point-tier label and running total to the
// choice's reaction.
func (r *Renderer) reactionText(o domain.Outcome) string {
	return fmt.Sprintf("%s\n判定: %s（現在 %d ポイント）", o.Reaction, pointTier(o.Points), o.TotalPoints)
}

// pointTier derives the tier label from the raw point value.
func pointTier(points int) string {
	switch {
	case points <= 1:
		return "good"
	case points == 2:
		return "neutral"
	default:
		return "bad"
	}
}
