package response

import (
	stderrors "errors"
	"net/http"

	"ngi/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON answer
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a list
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success answers 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created answers 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

// Accepted answers 202, used when a write was queued instead of stored
func Accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, Response{
		Code: 1,
		Mess: "Accepted",
		Data: data,
	})
}

// SuccessWithPagination answers 200 with page info
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ServerError answers 500
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Server error",
	})
}

// Unauthorized answers 401
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthorized",
	})
}

// NotFound answers 404
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
	})
}

// BadRequest answers 400 with message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict answers 409, data carries what the operator has to decide on
func Conflict(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
		Data: data,
	})
}

// AppErrorResponse picks the status for err. Anything that is not an
// AppError is a server error.
func AppErrorResponse(c *gin.Context, err error) {
	if stderrors.Is(err, errors.ErrBookingNotFound) ||
		stderrors.Is(err, errors.ErrReviewNotFound) ||
		stderrors.Is(err, errors.ErrGalleryNotFound) ||
		stderrors.Is(err, errors.ErrPaymentNotFound) {
		NotFound(c)
		return
	}

	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeDBNotFound:
		NotFound(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken, errors.ErrCodeInvalidPassword:
		Unauthorized(c)
	case errors.ErrCodeDatesClaimed, errors.ErrCodeInvalidTransition, errors.ErrCodeDBDuplicate:
		Conflict(c, appErr.Message, nil)
	case errors.ErrCodeDBError, errors.ErrCodeUploadFailed:
		ServerError(c)
	default:
		BadRequest(c, appErr.Message)
	}
}
