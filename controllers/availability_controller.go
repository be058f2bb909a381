package controllers

import (
	"time"

	"ngi/constants"
	"ngi/dto"
	"ngi/middleware"
	"ngi/response"
	"ngi/services"
	"ngi/services/notification"
	"ngi/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type AvailabilityController struct {
	Store *services.AvailabilityStore
	Cache *services.AvailabilityCache
	Redis *redis.Client
}

func NewAvailabilityController(store *services.AvailabilityStore, cache *services.AvailabilityCache, rdb *redis.Client) AvailabilityController {
	return AvailabilityController{
		Store: store,
		Cache: cache,
		Redis: rdb,
	}
}

// GetAvailability godoc
// @Summary  Booked and blocked dates
// @Tags     availability
// @Success  200 {object} dto.AvailabilitySnapshot
// @Router   /availability [get]
func (a AvailabilityController) GetAvailability(c *gin.Context) {
	var (
		snap dto.AvailabilitySnapshot
		err  error
	)
	if a.Cache != nil {
		snap, err = a.Cache.Get(c.Request.Context())
	} else {
		snap, err = a.Store.Snapshot(c.Request.Context())
	}
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, snap)
}

// GetDay godoc
// @Summary  One day's state and the price of every tier
// @Tags     availability
// @Param    date path  string true  "YYYY-MM-DD"
// @Param    tier query int    false "guest tier"
// @Router   /availability/day/{date} [get]
func (a AvailabilityController) GetDay(c *gin.Context) {
	tier := services.ParseGuestTier(c.DefaultQuery("tier", "1"))
	day, err := a.Store.DayStatus(c.Request.Context(), c.Param("date"), tier)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, day)
}

// GetCalendar godoc
// @Summary  One month of day states with prices for a tier
// @Tags     availability
// @Param    year  query int false "year"
// @Param    month query int false "1-12"
// @Param    tier  query int false "guest tier"
// @Router   /availability/calendar [get]
func (a AvailabilityController) GetCalendar(c *gin.Context) {
	var query dto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cal, err := a.Store.CalendarMonth(c.Request.Context(), query.Year, time.Month(query.Month), services.GuestTier(query.Tier))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, cal)
}

func (a AvailabilityController) GetHistory(c *gin.Context) {
	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	logs, err := a.Store.History(c.Request.Context(), query.Limit)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, logs)
}

// GetVersion lets a polling client skip refetching when nothing changed
func (a AvailabilityController) GetVersion(c *gin.Context) {
	if a.Redis == nil {
		response.Success(c, dto.VersionResponse{})
		return
	}

	stamps, err := notification.LastUpdated(c.Request.Context(), a.Redis)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, dto.VersionResponse{
		Booked:   stamps[constants.BookedSentinelKey],
		Blocked:  stamps[constants.BlockedSentinelKey],
		Bookings: stamps[constants.BookingsSentinelKey],
	})
}

func (a AvailabilityController) AddBooked(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	added, err := a.Store.AddBooked(c.Request.Context(), req.Start, req.End, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.DatesChangedResponse{Dates: added})
}

// RemoveBooked godoc
// @Summary  Remove booked days, keeping those an approved booking covers unless forced
// @Tags     availability
// @Param    range body dto.RemoveBookedRequest true "range"
// @Success  200 {object} dto.RemovalResult
// @Failure  409 {object} dto.RemovalResult "every day is still held"
// @Router   /admin/availability/booked [delete]
func (a AvailabilityController) RemoveBooked(c *gin.Context) {
	var req dto.RemoveBookedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := a.Store.RemoveBooked(c.Request.Context(), req.Start, req.End, req.Force, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	if len(result.Removed) == 0 && len(result.Retained) > 0 {
		response.Conflict(c, "Dates are held by approved bookings", result)
		return
	}
	response.Success(c, result)
}

func (a AvailabilityController) ClearBooked(c *gin.Context) {
	removed, err := a.Store.ClearBooked(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.DatesChangedResponse{Dates: removed})
}

func (a AvailabilityController) AddBlocked(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	added, err := a.Store.AddBlocked(c.Request.Context(), req.Start, req.End, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.DatesChangedResponse{Dates: added})
}

func (a AvailabilityController) RemoveBlocked(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	removed, err := a.Store.RemoveBlocked(c.Request.Context(), req.Start, req.End, middleware.Actor(c))
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.DatesChangedResponse{Dates: removed})
}

// GetPricing godoc
// @Summary  Price of one night for a tier
// @Tags     pricing
// @Param    tier query string false "tier number or label"
// @Param    date query string false "YYYY-MM-DD, today when empty"
// @Success  200 {object} services.Quote
// @Router   /pricing [get]
func (a AvailabilityController) GetPricing(c *gin.Context) {
	tier := services.ParseGuestTier(c.DefaultQuery("tier", "1"))
	if !tier.Valid() {
		response.BadRequest(c, "Unknown guest tier")
		return
	}

	date := c.Query("date")
	if date != "" && !utils.IsDateKey(date) {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	response.Success(c, services.QuoteFor(tier, date, a.Store.Now(), a.Store.Location()))
}

// GetTiers lists every tier with its weekday and weekend price
func (a AvailabilityController) GetTiers(c *gin.Context) {
	type tierRow struct {
		Tier    int    `json:"tier"`
		Label   string `json:"label"`
		Weekday int    `json:"weekday"`
		Weekend int    `json:"weekend"`
	}

	// 2024-01-01 is a Monday and 2024-01-06 a Saturday
	loc := a.Store.Location()
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	rows := make([]tierRow, 0, 4)
	for _, t := range services.Tiers() {
		rows = append(rows, tierRow{
			Tier:    int(t),
			Label:   t.Label(),
			Weekday: services.ComputePrice(t, "2024-01-01", ref, loc),
			Weekend: services.ComputePrice(t, "2024-01-06", ref, loc),
		})
	}
	response.Success(c, rows)
}
