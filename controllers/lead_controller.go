package controllers

import (
	"net/http"

	"ngi/dto"
	"ngi/middleware"
	"ngi/models"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	Leads *services.LeadService
}

func NewLeadController(leads *services.LeadService) LeadController {
	return LeadController{Leads: leads}
}

// RecordLead godoc
// @Summary  Page-visit beacon. Always answers 204.
// @Tags     leads
// @Param    lead body dto.LeadRequest false "visit"
// @Success  204
// @Router   /leads [post]
func (l LeadController) RecordLead(c *gin.Context) {
	var req dto.LeadRequest
	_ = c.ShouldBindJSON(&req)

	if req.SessionID == "" {
		req.SessionID = middleware.SessionID(c)
	}
	if req.Device == "" {
		req.Device = c.Request.UserAgent()
	}

	l.Leads.Record(c.Request.Context(), &models.Lead{
		Page:      req.Page,
		Time:      req.Time,
		Device:    req.Device,
		SessionID: req.SessionID,
	})
	c.Status(http.StatusNoContent)
}

func (l LeadController) GetLeads(c *gin.Context) {
	leads, err := l.Leads.ListLeads(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, leads)
}

func (l LeadController) SendContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg := &models.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := l.Leads.SaveContact(c.Request.Context(), msg); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, msg)
}

func (l LeadController) GetContacts(c *gin.Context) {
	msgs, err := l.Leads.ListContacts(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, msgs)
}
