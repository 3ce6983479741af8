package domain

import "time"

// DefaultTokenScope is recorded when the provider response omits the granted
// scope string.
const DefaultTokenScope = "https://www.googleapis.com/auth/youtube"

// ProviderTokens is the raw credential pair returned by the identity
// provider's token endpoint.
type ProviderTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Scope        string
}

// TokenRecord is the persisted form of the credential pair. Exactly one
// record exists at a time; it is overwritten wholesale on login and deleted
// wholesale on logout.
type TokenRecord struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Scope        string
	SavedAt      time.Time
}

// TokenStatus is a diagnostic snapshot of the token store. It never carries
// raw token values, only presence and length.
type TokenStatus struct {
	HasTokens    bool             `json:"hasTokens"`
	MemoryTokens TokenLengths     `json:"memoryTokens"`
	FileInfo     *TokenRecordMeta `json:"fileInfo"`
}

type TokenLengths struct {
	AccessTokenLength  int `json:"access_token_length"`
	RefreshTokenLength int `json:"refresh_token_length"`
}

type TokenRecordMeta struct {
	SavedAt         time.Time `json:"saved_at"`
	Scope           string    `json:"scopes"`
	HasRefreshToken bool      `json:"has_refresh_token"`
}
