package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/ports"
)

type StoryRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewStoryRepository(api ports.APIClient, logger *logrus.Logger) *StoryRepository {
	return &StoryRepository{api: api, logger: logger}
}

func (r *StoryRepository) ListByUser(ctx context.Context, userID string) ([]story.Story, error) {
	var out []story.Story
	if err := r.api.GetJSON(ctx, "/api/v1/stories/user/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list stories")
		}
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	if out == nil {
		out = []story.Story{}
	}
	return out, nil
}
