package request

type RegisterCustomerRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,alphanum,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=68,bcryptlen"`
	Phone    string  `json:"phone" validate:"required,max=20,phone"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

type RegisterProviderRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Username    *string `json:"username,omitempty" validate:"omitempty,alphanum,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=68,bcryptlen"`
	Skills      string  `json:"skills" validate:"required"`
	ServiceArea string  `json:"service_area" validate:"required,max=100"`
	HourlyRate  float64 `json:"hourly_rate" validate:"required,gt=0,max=999999.99"`
	Location    string  `json:"location" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=68"`
}

// RefreshRequest carries a refresh token for logout or rotation.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ResetEmailRequest struct {
	Email       string `json:"email" validate:"required,email"`
	RedirectURL string `json:"redirect_url,omitempty" validate:"omitempty,max=500"`
}

type SetNewPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=68,bcryptlen"`
	Token    string `json:"token" validate:"required"`
	UIDB64   string `json:"uidb64" validate:"required"`
}

type SocialLoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=customer provider"`
}

// ClientInfo describes the device a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
