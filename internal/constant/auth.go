package constant

const (
	// AuthorizationRealm is the authorization realm (prefix of value
	// in the `Authorization` header)
	AuthorizationRealm = "Token"

	// APIKeyLength is the length of generated api keys.
	APIKeyLength = 40
)
