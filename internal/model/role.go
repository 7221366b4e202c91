package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role is a label a user may hold; route guards match on Name.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"-"`
}

// DefaultRoles are seeded on startup.
var DefaultRoles = []Role{
	{Name: RoleUser, Description: "Registered traveller"},
	{Name: RoleAdmin, Description: "Manages users and reviews audit history"},
}
