package request

// Profile updates are partial: nil fields keep their stored value.

type CustomerProfileRequest struct {
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20,phone"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

type ProviderProfileRequest struct {
	Skills      *string  `json:"skills,omitempty"`
	ServiceArea *string  `json:"service_area,omitempty" validate:"omitempty,max=100"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0,max=999999.99"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=100"`
}
