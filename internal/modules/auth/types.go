package auth

// LoginDTO is the login request body.
type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminDTO is the admin provisioning request body.
type CreateAdminDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// ChangePasswordDTO is the password change request body.
type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// adminResponse is the admin identity shape returned by login and profile.
type adminResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// loginResponse is the login success payload.
type loginResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}
