package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin  UserRole = "Administrador"
	RoleViewer UserRole = "Visualizador"
)

// User is an account from the static credential list.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
