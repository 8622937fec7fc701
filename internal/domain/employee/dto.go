package employee

type CreateRequest struct {
	FullName     string `json:"full_name" validate:"notblank,max=200"`
	Registration string `json:"registration" validate:"notblank,max=50"`
	JobTitle     string `json:"job_title" validate:"max=120"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
}

// UpdateRequest applies only the fields that are present.
type UpdateRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,notblank,max=200"`
	Registration *string `json:"registration" validate:"omitempty,notblank,max=50"`
	JobTitle     *string `json:"job_title" validate:"omitempty,max=120"`
	Email        *string `json:"email" validate:"omitempty,email,max=255"`
	Active       *bool   `json:"active"`
}
