package user

// UpdateProfileRequest is the profile update payload
// Nil fields are left unchanged
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}
