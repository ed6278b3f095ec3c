package request

// LoginRequest is the studio console sign-in body. Password bounds follow
// user.MinPasswordLength and user.MaxPasswordLength.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}
