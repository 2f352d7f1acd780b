package song

import "errors"

var ErrInvalidLikeRequest = errors.New("userId and songId are required")

// Song is a track as served by the backend. Like counters absent from the
// payload decode to their zero values.
type Song struct {
	ID            string `json:"id"`
	Artist        string `json:"artist"`
	AudioURL      string `json:"audio_url"`
	Cover         string `json:"cover"`
	Title         string `json:"title"`
	IsLiked       bool   `json:"isLiked"`
	IsDisliked    bool   `json:"isDisliked"`
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
}

// Short is a short-form clip from the social backend.
type Short struct {
	ID            string `json:"id"`
	Artist        string `json:"artist"`
	AudioURL      string `json:"audio_url"`
	Cover         string `json:"cover"`
	Title         string `json:"title"`
	IsLiked       bool   `json:"isLiked"`
	IsDisliked    bool   `json:"isDisliked"`
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
}

// LikeStatus is one user's reaction to one song together with the
// song-wide counters.
type LikeStatus struct {
	SongID        string `json:"songId"`
	UserID        string `json:"userId"`
	IsLiked       bool   `json:"isLiked"`
	IsDisliked    bool   `json:"isDisliked"`
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
}

// LikeRequest is the body of the like and dislike writes.
type LikeRequest struct {
	UserID string `json:"userId"`
	SongID string `json:"songId"`
}

func (r LikeRequest) Validate() error {
	if r.UserID == "" || r.SongID == "" {
		return ErrInvalidLikeRequest
	}
	return nil
}

// Reaction selects which write a LikeRequest is sent as.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

func (r Reaction) IsValid() bool {
	switch r {
	case ReactionLike, ReactionDislike:
		return true
	default:
		return false
	}
}
