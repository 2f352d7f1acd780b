package fetchcache

import "strings"

// keySep joins the components of a composite key. Inside a component it is
// escaped, as is the escape character, so distinct parameter sets never
// build the same key. Ids without either character are used verbatim.
const keySep = "-"

var componentEscaper = strings.NewReplacer(`\`, `\\`, keySep, `\`+keySep)

func joinKey(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = componentEscaper.Replace(p)
	}
	return strings.Join(escaped, keySep)
}

// SingleKey is the cache key of a resource addressed by one identifier
// (user id, playlist id). The id is used as-is.
func SingleKey(id string) string {
	return id
}

// ChatPair identifies the messages of one chat between two participants.
type ChatPair struct {
	ChatID string
	UserA  string
	UserB  string
}

// ChatPairKey builds the key for a chat message listing. Participants are
// ordered so that (A,B) and (B,A) share one entry.
func ChatPairKey(p ChatPair) string {
	a, b := p.UserA, p.UserB
	if b < a {
		a, b = b, a
	}
	return joinKey(p.ChatID, a, b)
}

// SongUser identifies the like/dislike status of one song for one user.
type SongUser struct {
	SongID string
	UserID string
}

// SongUserKey builds the like-status key. The order is fixed (song, user)
// because the two roles are not interchangeable.
func SongUserKey(p SongUser) string {
	return joinKey(p.SongID, p.UserID)
}
