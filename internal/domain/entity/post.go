package entity

// BookmarkSummary is a read-only projection computed by joining a user's
// bookmark set against live post records. Never persisted on the User.
type BookmarkSummary struct {
	PostID string `json:"postId"`
	Title  string `json:"title"`
	Closed int    `json:"closed"`
}
