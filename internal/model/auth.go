package model

// LoginRequest identifies a portal account. Credential verification lives
// in the external identity provider; this service only resolves the account
// and issues a role claim for it.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        Role   `json:"role"`
}
