package controllers

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"ngi/builders"
	"ngi/dto"
	"ngi/middleware"
	"ngi/models"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Facade   *services.BookingFacade
}

func NewBookingController(bookings *services.BookingService, facade *services.BookingFacade) BookingController {
	return BookingController{
		Bookings: bookings,
		Facade:   facade,
	}
}

// GetBookings godoc
// @Summary  List bookings, newest first
// @Tags     bookings
// @Param    status query string false "pending|approved|rejected"
// @Param    q      query string false "guest name, email or phone"
// @Param    page   query int    false "page from 0"
// @Param    limit  query int    false "page size"
// @Success  200 {object} response.Response
// @Router   /admin/bookings [get]
func (b BookingController) GetBookings(c *gin.Context) {
	var query dto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := b.Bookings.List(c.Request.Context(), services.BookingFilter{
		Status: query.Status,
		Query:  query.Q,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	response.SuccessWithPagination(c, dto.BookingListResponse{
		Bookings:   page.Bookings,
		Suggestion: page.Suggestion,
	}, page.Page, page.Limit, page.Total)
}

func (b BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := b.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, booking)
}

// CreateBooking godoc
// @Summary  Request a booking
// @Tags     bookings
// @Accept   json
// @Param    booking body dto.BookingRequest true "booking"
// @Success  201 {object} response.Response
// @Router   /bookings [post]
func (b BookingController) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking := bookingFromRequest(req)
	if err := b.Bookings.Create(c.Request.Context(), booking); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, booking)
}

// SubmitBooking godoc
// @Summary  Full visitor flow: identity upload, advance payment info, booking
// @Tags     bookings
// @Accept   multipart/form-data
// @Param    identity formData file false "identity document"
// @Success  201 {object} response.Response
// @Success  202 {object} response.Response "stored in the fallback queue"
// @Router   /bookings/submit [post]
func (b BookingController) SubmitBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// file stays a nil interface when nothing was attached
	var file interface{}
	if fh := identityFile(c); fh != nil {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Cannot read identity document")
			return
		}
		defer f.Close()
		file = f
	}

	result, err := b.Facade.Submit(c.Request.Context(), bookingFromRequest(req), file)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	if result.Queued {
		response.Accepted(c, result)
		return
	}
	response.Created(c, result)
}

// UpdateBookingStatus godoc
// @Summary  Approve or reject a booking
// @Tags     bookings
// @Param    id     path int               true "booking id"
// @Param    status body dto.StatusRequest true "approved|rejected"
// @Success  200 {object} response.Response
// @Failure  409 {object} response.Response "transition not allowed"
// @Router   /admin/bookings/{id} [patch]
func (b BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := b.Bookings.UpdateStatus(c.Request.Context(), id, req.Status, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, booking)
}

// DeleteBooking godoc
// @Summary  Delete a booking and free the days nothing else holds
// @Tags     bookings
// @Param    id path int true "booking id"
// @Success  200 {object} dto.DeleteBookingResponse
// @Router   /admin/bookings/{id} [delete]
func (b BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := b.Bookings.Delete(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	response.Success(c, dto.DeleteBookingResponse{
		Success:  true,
		Removed:  result.Removed,
		Retained: result.Retained,
	})
}

// ImportBookings takes a JSON array of historical records in any of the
// old field layouts
func (b BookingController) ImportBookings(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Cannot read body")
		return
	}

	bookings, err := services.DecodeLegacyBookings(body)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	imported, err := b.Bookings.Import(c.Request.Context(), bookings, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, dto.ImportResponse{Imported: len(imported), Bookings: imported})
}

func bookingFromRequest(req dto.BookingRequest) *models.Booking {
	builder := builders.NewBookingBuilder().
		WithGuest(req.Name, req.Email, req.Phone).
		WithStay(req.CheckIn, req.CheckOut).
		WithGuests(guestTier(req.Guests, req.GuestsForm)).
		WithMessage(req.Message).
		WithIdentityDocument(req.IdentityDocument)

	if req.Payment != nil {
		builder.WithPayment(*req.Payment)
	} else if req.PaymentMethod != "" {
		builder.WithPayment(models.PaymentInfo{Method: req.PaymentMethod, Ref: req.PaymentRef})
	}
	return builder.Build()
}

// guestTier reads a tier number or label. Absent is 0 (defaulted later),
// unrecognised is -1 so validation rejects it.
func guestTier(v interface{}, form string) int {
	s := form
	if v != nil {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return 0
	}
	if t := services.ParseGuestTier(s); t.Valid() {
		return int(t)
	}
	return -1
}

func identityFile(c *gin.Context) *multipart.FileHeader {
	for _, field := range []string{"identity", "aadhaar", "file"} {
		if fh, err := c.FormFile(field); err == nil {
			return fh
		}
	}
	return nil
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
