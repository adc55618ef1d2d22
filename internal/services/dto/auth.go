package dto

// --- Phone OTP flow ---

type SendOtpRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=8,max=20"`
}

type VerifyOtpRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=8,max=20"`
	Otp         string `json:"otp" validate:"required,len=6"`
	FCMToken    string `json:"fcm_token,omitempty"`
}

// --- Email verification flow ---

type SendEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6"`
}

// --- Password flow ---

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FCMToken string `json:"fcm_token,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// --- Token flow ---

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries the token pair plus the signed-in user's profile.
// IsNewUser tells the client whether to route into onboarding.
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int           `json:"expiresIn"`
	IsNewUser    bool          `json:"isNewUser"`
	User         *UserResponse `json:"user"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}
