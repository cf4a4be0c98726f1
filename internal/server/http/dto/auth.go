package dto

// RegisterRequest describes sign-up payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries a reset token and the replacement password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
