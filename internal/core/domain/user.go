package domain

// User is a back-office operator account.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuthProvider string `json:"authProvider"` // "local" or "google"
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google userinfo payload the sign-in
// flow consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
