package models

// Category is a product grouping, unique by name.
type Category struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	ImageURL string `json:"image_url"`
}

// Brand is a product manufacturer, unique by name.
type Brand struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	LogoURL string `json:"logo_url"`
}

// StoreLocation is a physical shop location.
type StoreLocation struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Name      string   `json:"name" gorm:"index" validate:"required"`
	Address   string   `json:"address" validate:"required"`
	City      string   `json:"city" validate:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Phone     string   `json:"phone"`
}
