package common

// SessionCookieName is the HttpOnly cookie that carries the session token
// between the REST API and its clients.
const SessionCookieName = "jwt"

const (
	// MinPasswordLength is the shortest password accepted on registration
	// and password change.
	MinPasswordLength = 6

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72

	// MaxNotesLength bounds the free-text notes of a collection item.
	MaxNotesLength = 500

	// Column widths of the users and collection_items tables, in characters.
	MaxUsernameLength  = 50
	MaxEmailLength     = 255
	MaxCardIDLength    = 64
	MaxVariantLength   = 32
	MaxConditionLength = 32

	// MaxQuantity caps the copies held in a single collection item,
	// including the total reached by repeated adds.
	MaxQuantity = 9999
)
