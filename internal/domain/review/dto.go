package review

// CreateReviewRequest is the review creation payload
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=3,max=2000"`
}
