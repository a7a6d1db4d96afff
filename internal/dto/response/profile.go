package response

import (
	"time"

	"hirehub/internal/data/entity"
)

type CustomerProfileResponse struct {
	Phone      *string   `json:"phone"`
	Location   *string   `json:"location"`
	IsComplete bool      `json:"is_profile_complete"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProviderProfileResponse struct {
	Skills      *string   `json:"skills"`
	ServiceArea *string   `json:"service_area"`
	HourlyRate  *float64  `json:"hourly_rate"`
	Location    *string   `json:"location"`
	IsComplete  bool      `json:"is_profile_complete"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileResponse tags the profile variant with Kind; only the matching field is set.
type ProfileResponse struct {
	Kind     string                   `json:"kind"`
	Customer *CustomerProfileResponse `json:"customer,omitempty"`
	Provider *ProviderProfileResponse `json:"provider,omitempty"`
}

type AccountResponse struct {
	User            UserResponse    `json:"user"`
	Profile         ProfileResponse `json:"profile"`
	ProfileComplete bool            `json:"profile_complete"`
}

func ProfileToResponse(p entity.Profile) ProfileResponse {
	resp := ProfileResponse{Kind: p.Kind.String()}
	switch p.Kind {
	case entity.CustomerKind:
		resp.Customer = &CustomerProfileResponse{
			Phone:      p.Customer.Phone,
			Location:   p.Customer.Location,
			IsComplete: p.Customer.IsComplete,
			UpdatedAt:  p.Customer.UpdatedAt,
		}
	case entity.ProviderKind:
		resp.Provider = &ProviderProfileResponse{
			Skills:      p.Provider.Skills,
			ServiceArea: p.Provider.ServiceArea,
			HourlyRate:  p.Provider.HourlyRate,
			Location:    p.Provider.Location,
			IsComplete:  p.Provider.IsComplete,
			UpdatedAt:   p.Provider.UpdatedAt,
		}
	}
	return resp
}
