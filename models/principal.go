package models

// principal roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the opaque authenticated identity attached to every
// protected call. The pipeline trusts it as issued and never re-derives it.
type Principal struct {
	Id   string `json:"id"`
	Role string `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsZero() bool {
	return p.Id == ""
}
