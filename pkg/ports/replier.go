package ports

import (
	"context"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// Replier defines the interface for delivering reply messages to the
// messaging platform. One reply token accepts exactly one reply call.
type Replier interface {
	// Reply delivers the messages for the given reply token.
	Reply(ctx context.Context, replyToken string, messages []domain.Message) error

	// Profile fetches the platform profile of a user.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
}
