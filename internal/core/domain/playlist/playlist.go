package playlist

import "github.com/vjiki/music-ui/internal/core/domain/song"

type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cover       string `json:"cover,omitempty"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt"`
}

// WithSongs is a playlist together with its tracks.
type WithSongs struct {
	Playlist
	Songs []song.Song `json:"songs"`
}
