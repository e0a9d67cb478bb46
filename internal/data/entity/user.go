package entity

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	Base
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"` // bcrypt hash
	Role     string `db:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
