package posts

// Post represents a single record of the remote /posts collection.
// The same shape is returned by the public API and by the fixture server.
type Post struct {
	Title  string `json:"title" db:"title"`
	Body   string `json:"body" db:"body"`
	ID     int    `json:"id" db:"id"`
	UserID int    `json:"userId,omitempty" db:"user_id"`
}

// Draft represents input for creating a new post.
// It is the JSON body sent with POST /posts; UserID is omitted when zero.
type Draft struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId,omitempty"`
}

// Limits for server-side validation, counted in grapheme clusters
const (
	MaxTitleGraphemes = 300
	MaxBodyGraphemes  = 10000

	// MaxListLimit caps how many posts a single list call returns
	MaxListLimit = 100
)
