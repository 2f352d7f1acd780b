package story

import "github.com/vjiki/music-ui/internal/core/domain/song"

type Story struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	SongID          string    `json:"songId"`
	Song            song.Song `json:"song"`
	UserName        string    `json:"userName"`
	ProfileImageURL string    `json:"profileImageURL,omitempty"`
	StoryImageURL   string    `json:"storyImageURL,omitempty"`
	StoryPreviewURL string    `json:"storyPreviewURL,omitempty"`
	IsViewed        bool      `json:"isViewed"`
	CreatedAt       string    `json:"createdAt"`
}
