package catalog

type CreateRoomTypeRequest struct {
	Name      string  `json:"name" binding:"required"`
	BasePrice float64 `json:"base_price" binding:"gte=0"`
	Capacity  int     `json:"capacity"`
}

type CreateRoomRequest struct {
	RoomTypeID int64  `json:"room_type_id" binding:"required"`
	Number     string `json:"number" binding:"required"`
}

type UpdatePriceRequest struct {
	Price float64 `json:"price" binding:"gte=0"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateServiceRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type CreateTierRequest struct {
	Name           string  `json:"name" binding:"required"`
	TierOrder      int     `json:"tier_order" binding:"required"`
	MinSpending    float64 `json:"min_spending" binding:"gte=0"`
	MinBookings    int     `json:"min_bookings" binding:"gte=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gt=0"`
}
