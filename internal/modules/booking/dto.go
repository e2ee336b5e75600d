package booking

type ServiceSelectionRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type CreateBookingRequest struct {
	RoomID    int64                     `json:"room_id" binding:"required"`
	StartDate string                    `json:"start_date" binding:"required"`
	EndDate   string                    `json:"end_date" binding:"required"`
	Services  []ServiceSelectionRequest `json:"services"`
}
