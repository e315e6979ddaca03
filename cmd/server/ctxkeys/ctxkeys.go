// Package ctxkeys holds the fiber Locals keys shared by middlewares and handlers.
package ctxkeys

type key int

const (
	// Claims holds the *auth.Claims of a verified bearer token.
	Claims key = iota
	// RequestID holds the request id string.
	RequestID
)

// Token is where the jwt middleware stores the parsed *jwt.Token. It has to
// be a string because that is what the middleware config accepts.
const Token = "geo-users.token"
