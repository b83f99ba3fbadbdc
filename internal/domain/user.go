package domain

import "time"

// Operator roles issued by the identity provider.
const (
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User identifies the signed-in operator.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
