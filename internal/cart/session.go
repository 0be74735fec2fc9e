package cart

// Session is the per-shopper context that owns a Cart together with the checkout form fields.
type Session struct {
	UserID        string
	CustomerName  string
	CustomerPhone string
	Note          string
	Cart          *Cart
}

func NewSession(userID string) *Session {
	return &Session{UserID: userID, Cart: New()}
}
