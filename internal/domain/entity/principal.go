package entity

// Principal is the caller identity derived from a verified bearer token.
// It lives for the duration of a single request.
type Principal struct {
	Username string
	UserID   int64
}
