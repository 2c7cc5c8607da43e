package property

// CreatePropertyRequest is the listing creation payload
type CreatePropertyRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description" validate:"required,min=10,max=5000"`
	City          string   `json:"city" validate:"required,min=1,max=100"`
	Country       string   `json:"country" validate:"required,min=2,max=100"`
	Address       string   `json:"address" validate:"required,min=1,max=300"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	PropertyType  string   `json:"property_type" validate:"required,property_type"`
	PricePerNight int64    `json:"price_per_night" validate:"required,gte=1"`
	MaxGuests     int      `json:"max_guests" validate:"required,gte=1,lte=50"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0,lte=50"`
	Beds          int      `json:"beds" validate:"required,gte=1,lte=100"`
	Bathrooms     int      `json:"bathrooms" validate:"required,gte=1,lte=50"`
	Amenities     []string `json:"amenities" validate:"omitempty,max=50,dive,min=1,max=100"`
}

// UpdatePropertyRequest is the listing update payload
// Nil fields are left unchanged
type UpdatePropertyRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=10,max=5000"`
	City          *string  `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Country       *string  `json:"country,omitempty" validate:"omitempty,min=2,max=100"`
	Address       *string  `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	PropertyType  *string  `json:"property_type,omitempty" validate:"omitempty,property_type"`
	PricePerNight *int64   `json:"price_per_night,omitempty" validate:"omitempty,gte=1"`
	MaxGuests     *int     `json:"max_guests,omitempty" validate:"omitempty,gte=1,lte=50"`
	Bedrooms      *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=0,lte=50"`
	Beds          *int     `json:"beds,omitempty" validate:"omitempty,gte=1,lte=100"`
	Bathrooms     *int     `json:"bathrooms,omitempty" validate:"omitempty,gte=1,lte=50"`
	Amenities     []string `json:"amenities,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// ListFilter controls the public listing search
type ListFilter struct {
	City         string
	PropertyType string
	MinPrice     *int64
	MaxPrice     *int64
	MinGuests    *int
	Page         int
	PerPage      int
}

// Normalize applies pagination defaults
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
}
