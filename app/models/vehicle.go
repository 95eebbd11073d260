package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vehicle body types.
const (
	BodyTypeSUV   = "SUV"
	BodyTypeSedan = "SEDAN"
	BodyTypeCoupe = "COUPE"
	BodyTypeTruck = "TRUCK"
	BodyTypeVan   = "VAN"
)

// BodyTypes lists every valid body type.
var BodyTypes = []string{BodyTypeSUV, BodyTypeSedan, BodyTypeCoupe, BodyTypeTruck, BodyTypeVan}

// ValidBodyType reports whether t is one of the enumerated body types.
func ValidBodyType(t string) bool {
	for _, b := range BodyTypes {
		if t == b {
			return true
		}
	}
	return false
}

// StringList is an ordered sequence of strings stored as a JSON column.
// Used for vehicle image URLs and feature lists.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}
}

// Vehicle represents a listing in the catalog.
type Vehicle struct {
	gorm.Model
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Brand       string          `gorm:"size:100;not null;index" json:"brand"`
	ModelName   string          `gorm:"size:100;not null;column:model" json:"model"`
	Year        int             `gorm:"not null" json:"year"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Color       string          `gorm:"size:50" json:"color"`
	BodyType    string          `gorm:"size:20;not null;index" json:"body_type"`
	Images      StringList      `gorm:"type:text" json:"images"`
	Description string          `gorm:"type:text" json:"description"`
	Features    StringList      `gorm:"type:text" json:"features"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Available   bool            `gorm:"not null;default:true" json:"available"`
	AvgRating   float64         `gorm:"not null;default:0" json:"avg_rating"`
	ViewCount   int64           `gorm:"not null;default:0" json:"view_count"`
}
