package domain

// Profile is the identity returned by the provider's userinfo endpoint.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Session is the result of a completed login: the authenticated profile plus
// the signed application session token the client presents on later requests.
type Session struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}
