package common

// Storage keys for persisted client state. The token key matches the name
// the web client used in browser local storage, so both frontends read the
// same logical slot.
const (
	TokenStorageKey      = "jwt_token"
	PreviewKeyStorageKey = "gemini_api_key"
)
