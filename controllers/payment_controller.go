package controllers

import (
	"ngi/dto"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) PaymentController {
	return PaymentController{Payments: payments}
}

// CreateOrder godoc
// @Summary  Open a gateway order for the advance
// @Tags     payments
// @Param    order body dto.CreateOrderRequest false "amount defaults to the advance"
// @Success  201 {object} services.PaymentOrder
// @Router   /payments/order [post]
func (p PaymentController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	order, err := p.Payments.CreateOrder(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, order)
}

// VerifyPayment godoc
// @Summary  Check the gateway signature and mark the order paid
// @Tags     payments
// @Param    payment body dto.VerifyPaymentRequest true "gateway callback"
// @Router   /payments/verify [post]
func (p PaymentController) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := p.Payments.Verify(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, payment)
}

func (p PaymentController) RecordUPI(c *gin.Context) {
	var req dto.UPIPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := p.Payments.RecordUPI(c.Request.Context(), req.Amount, req.Reference)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, payment)
}
