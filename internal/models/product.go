package models

import "time"

// Product is a catalog item. Stock must never go negative; order
// placement enforces this inside its transaction.
type Product struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"index" validate:"required,min=1,max=200"`
	Description      string     `json:"description" gorm:"type:text"`
	Price            float64    `json:"price" validate:"required,gt=0"`
	Stock            int        `json:"stock" validate:"gte=0"`
	ImageURL         string     `json:"image_url"` // Main image
	AdditionalImages StringList `json:"additional_images" gorm:"type:json"`
	Specs            SpecMap    `json:"specs" gorm:"type:json"`
	Rating           float64    `json:"rating"`
	ReviewCount      int        `json:"review_count"`

	CategoryID uint  `json:"category_id" validate:"required"`
	BrandID    *uint `json:"brand_id"`

	Category *Category `json:"category,omitempty"`
	Brand    *Brand    `json:"brand,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
