package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Rates travel as JSON numbers (7.5), not strings ("7.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseProvinceTax is the canonical rate for a province. At most one row per
// province.
type BaseProvinceTax struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Province  string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"province"`
	Tax       decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tax"`
	CreatedAt time.Time       `json:"created_at"`
}

func (BaseProvinceTax) TableName() string {
	return "province_tax"
}

// RegisteredProvinceTax links a user to a main (and optional secondary)
// province. The *ProvinceTax columns are snapshots of the base rate taken
// when the row was last written; they do not follow later base changes.
type RegisteredProvinceTax struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_registration_user_main,priority:1" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Email  string `gorm:"type:varchar(255);not null" json:"email"`

	MainProvinceID  uint             `gorm:"not null;uniqueIndex:idx_registration_user_main,priority:2" json:"main_province_id"`
	MainProvince    *BaseProvinceTax `gorm:"foreignKey:MainProvinceID" json:"-"`
	MainProvinceTax decimal.Decimal  `gorm:"type:decimal(10,4);not null" json:"main_province_tax"`

	SecondaryProvinceID  *uint               `gorm:"index" json:"secondary_province_id"`
	SecondaryProvince    *BaseProvinceTax    `gorm:"foreignKey:SecondaryProvinceID" json:"-"`
	SecondaryProvinceTax decimal.NullDecimal `gorm:"type:decimal(10,4)" json:"secondary_province_tax"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RegisteredProvinceTax) TableName() string {
	return "registered_province_tax"
}
