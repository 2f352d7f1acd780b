package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/ports"
)

// ChatRepository reads chat lists from the social backend.
type ChatRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewChatRepository(api ports.APIClient, logger *logrus.Logger) *ChatRepository {
	return &ChatRepository{api: api, logger: logger}
}

func (r *ChatRepository) ListByUser(ctx context.Context, userID string) ([]chat.ListItem, error) {
	var out []chat.ListItem
	if err := r.api.GetJSON(ctx, "/api/v1/chats/user/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list chats")
		}
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	if out == nil {
		out = []chat.ListItem{}
	}
	return out, nil
}

// MessageRepository reads chat messages from the primary backend.
type MessageRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewMessageRepository(api ports.APIClient, logger *logrus.Logger) *MessageRepository {
	return &MessageRepository{api: api, logger: logger}
}

// ListByChat returns the chat's messages with deleted ones removed.
func (r *MessageRepository) ListByChat(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
	var out []chat.Message
	query := url.Values{"userId1": {userID1}, "userId2": {userID2}}
	if err := r.api.GetJSON(ctx, "/api/v1/messages/chat/"+url.PathEscape(chatID), query, &out); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{
				"chat_id":  chatID,
				"user_id1": userID1,
				"user_id2": userID2,
			}).WithError(err).Error("api: failed to list messages")
		}
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return chat.WithoutDeleted(out), nil
}
