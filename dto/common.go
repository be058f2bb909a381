package dto

// StatusRequest moves a record to a new status
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SuccessResponse is the body of a delete
type SuccessResponse struct {
	Success bool `json:"success"`
}
