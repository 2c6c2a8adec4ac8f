package orders

type orderRequest struct {
	CustomerID       int64 `json:"customer_id" validate:"required,gt=0"`
	ShipmentPriority *int  `json:"shipment_priority" validate:"omitempty,gte=0,lte=2147483647"`
}

type lineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0,lte=2147483647"`
}

type placeOrderRequest struct {
	CustomerID       int64         `json:"customer_id" validate:"required,gt=0"`
	ShipmentPriority *int          `json:"shipment_priority" validate:"omitempty,gte=0,lte=2147483647"`
	Lines            []lineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r placeOrderRequest) request() PlaceOrderRequest {
	lines := make([]LineRequest, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, LineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return PlaceOrderRequest{CustomerID: r.CustomerID, ShipmentPriority: r.ShipmentPriority, Lines: lines}
}
