package constants

const (
	// ContextKeyUserID is the session and gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "warbler_session"

	MinPasswordLength = 6
	MaxMessageLength  = 50

	// TimelineLimit caps every timeline query.
	TimelineLimit = 100

	// MaxAISuggestions caps how many drafts a single suggestion request may return.
	MaxAISuggestions = 5

	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)
