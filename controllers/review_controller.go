package controllers

import (
	"ngi/dto"
	"ngi/models"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) ReviewController {
	return ReviewController{Reviews: reviews}
}

// CreateReview godoc
// @Summary  Leave a review; it waits for moderation
// @Tags     reviews
// @Param    review body dto.ReviewRequest true "review"
// @Success  201 {object} models.Review
// @Router   /reviews [post]
func (r ReviewController) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review := &models.Review{Name: req.Name, Rating: req.Rating, Text: req.Text}
	if err := r.Reviews.Create(c.Request.Context(), review); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, review)
}

func (r ReviewController) GetPublicReviews(c *gin.Context) {
	reviews, err := r.Reviews.ListPublic(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, reviews)
}

func (r ReviewController) GetAllReviews(c *gin.Context) {
	reviews, err := r.Reviews.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, reviews)
}

func (r ReviewController) UpdateReviewStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := r.Reviews.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, review)
}

func (r ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := r.Reviews.Delete(c.Request.Context(), id); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.SuccessResponse{Success: true})
}
