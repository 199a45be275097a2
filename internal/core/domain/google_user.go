package domain

// GoogleUserInfo holds the profile fields returned by Google's userinfo
// endpoint during the OAuth login flow.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
