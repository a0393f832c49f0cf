package model

// Listing 模拟房源，只读
type Listing struct {
	ID              int      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Price           int      `gorm:"not null" json:"price"`
	Bedrooms        int      `gorm:"not null" json:"bedrooms"`
	PetsAllowed     string   `gorm:"size:10" json:"pets_allowed"`
	Title           string   `gorm:"size:200;not null" json:"title"`
	Description     string   `gorm:"type:text" json:"description"`
	LandlordPersona string   `gorm:"size:100" json:"landlord_persona"`
	ListerName      string   `gorm:"size:100" json:"lister_name"`
	RedFlags        []string `gorm:"-" json:"red_flags,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}
