package dto

// SignupRequest binds from JSON or an HTML form post.
type SignupRequest struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	Password1   string `json:"password1" form:"password1"`
	Password2   string `json:"password2" form:"password2"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth"`
	School      string `json:"school" form:"school"`
	Grade       *int   `json:"grade" form:"grade"`
}

// LoginRequest takes a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}
