package admin

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
}
