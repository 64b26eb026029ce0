package constants

const (
	Admin     = "admin"
	Agent     = "agent"
	Client    = "client"
	Developer = "developer"
)

// DisabledUserPrefix keys the Redis denylist of deactivated users.
// Auth middleware rejects bearer tokens for users present under this prefix.
const DisabledUserPrefix = "user_disabled:"

// DisabledUserKey returns the Redis key for a deactivated user.
func DisabledUserKey(userID string) string {
	return DisabledUserPrefix + userID
}
