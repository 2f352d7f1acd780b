package chat

// ListItem is one row of a user's chat list.
type ListItem struct {
	ChatID                string        `json:"chatId"`
	ChatType              string        `json:"chatType"`
	Title                 string        `json:"title,omitempty"`
	AvatarURL             string        `json:"avatarUrl,omitempty"`
	LastMessagePreview    string        `json:"lastMessagePreview,omitempty"`
	LastMessageAt         string        `json:"lastMessageAt,omitempty"`
	LastMessageSenderID   string        `json:"lastMessageSenderId,omitempty"`
	LastMessageSenderName string        `json:"lastMessageSenderName,omitempty"`
	UnreadCount           int           `json:"unreadCount"`
	IsMuted               bool          `json:"isMuted"`
	UpdatedAt             string        `json:"updatedAt,omitempty"`
	Participants          []Participant `json:"participants"`
}

type Participant struct {
	UserID        string `json:"userId"`
	UserNickname  string `json:"userNickname"`
	UserAvatarURL string `json:"userAvatarUrl,omitempty"`
}

type Message struct {
	ID              string `json:"id"`
	ChatID          string `json:"chatId"`
	SenderID        string `json:"senderId,omitempty"`
	SenderEmail     string `json:"senderEmail,omitempty"`
	SenderNickname  string `json:"senderNickname,omitempty"`
	SenderAvatarURL string `json:"senderAvatarUrl,omitempty"`
	ReplyToID       string `json:"replyToId,omitempty"`
	MessageType     string `json:"messageType"`
	Content         string `json:"content,omitempty"`
	SongID          string `json:"songId,omitempty"`
	AttachmentCount int    `json:"attachmentCount"`
	IsEdited        bool   `json:"isEdited"`
	IsDeleted       bool   `json:"isDeleted"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// WithoutDeleted returns the messages not flagged as deleted, preserving
// order. The input slice is not modified.
func WithoutDeleted(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.IsDeleted {
			out = append(out, m)
		}
	}
	return out
}
