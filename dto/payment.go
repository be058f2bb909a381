package dto

type CreateOrderRequest struct {
	Amount   int    `json:"amount" binding:"omitempty,min=1"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type UPIPaymentRequest struct {
	Amount    int    `json:"amount" binding:"omitempty,min=1"`
	Reference string `json:"reference"`
}

// ConfigResponse tells the browser which API origin to call
type ConfigResponse struct {
	APIBase  string `json:"apiBase"`
	Timezone string `json:"timezone"`
	Advance  int    `json:"advance"`
}
