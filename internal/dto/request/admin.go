package request

type ProviderListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}
