package handler

// registerRequest is the POST /auth/register body. Role is optional and
// defaults to VIEWER in the service.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
