package user

type (
	// Request is the POST body, both fields must be present and non-empty.
	Request struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required"`
	}
	// UpdateRequest is the PUT body, absent or empty fields are left as they are.
	UpdateRequest struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)
