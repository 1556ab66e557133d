package session

// Session is the server-side record behind one opaque session id. The
// client only ever holds SessionID (in an HTTP-only cookie); everything
// else stays in the store.
//
// Expiry is fixed at creation. There is no sliding renewal: ExpiresAt
// never moves after Create.
type Session struct {
	SessionID string
	Subject   string
	Role      string
	CSRFToken string

	CreatedAt int64
	ExpiresAt int64
}
