package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateBaseTax      = "CREATE_BASE_PROVINCE_TAX"
	ActionRegisterProvince   = "REGISTER_PROVINCE_TAX"
	ActionUpdateRegistration = "UPDATE_REGISTERED_PROVINCE_TAX"
	ActionDeleteRegistration = "DELETE_REGISTERED_PROVINCE_TAX"
	ActionUpdateUserRoles    = "UPDATE_USER_ROLES"
	ActionUpdateUserStatus   = "UPDATE_USER_STATUS"
)

// AuditLog tracks who changed what and when.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"` // nil for system actions
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:text" json:"details"` // JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
