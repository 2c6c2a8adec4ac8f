package customers

type customerRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      *string `json:"phone"`
	StreetAddr *string `json:"street_addr"`
	State      *string `json:"state"`
	Zipcode    *string `json:"zipcode"`
	City       *string `json:"city"`
}

func (r customerRequest) input() Input {
	return Input{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		StreetAddr: r.StreetAddr,
		State:      r.State,
		Zipcode:    r.Zipcode,
		City:       r.City,
	}
}
