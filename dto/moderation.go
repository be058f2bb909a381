package dto

type ReviewRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

type GalleryRequest struct {
	Image string `json:"image" form:"image"`
	Title string `json:"title" form:"title"`
}

type LeadRequest struct {
	Page      string `json:"page"`
	Time      string `json:"time"`
	Device    string `json:"device"`
	SessionID string `json:"sessionId"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
