package models

import (
	"time"
)

// Property type categories
const (
	PropertyTypeHouse      = "House"
	PropertyTypeCondo      = "Condo"
	PropertyTypeVilla      = "Villa"
	PropertyTypeApartment  = "Apartment"
	PropertyTypeLand       = "Land"
	PropertyTypeCommercial = "Commercial"
)

// Property sale/rental statuses
const (
	PropertyStatusForSale      = "For Sale"
	PropertyStatusForRent      = "For Rent"
	PropertyStatusOffPlan      = "Off-Plan"
	PropertyStatusStillSelling = "Still Selling"
)

// PropertyUnit is a unit type offered within a development (e.g. "3 Bed Terrace").
type PropertyUnit struct {
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// PaymentPlan is a named installment option for an off-plan property.
type PaymentPlan struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Deposit float64 `json:"deposit,omitempty"`
}

// InvestmentInsights holds the fixed set of yield notes shown on a listing.
type InvestmentInsights struct {
	ShortLet     string `json:"short_let,omitempty"`
	Rental       string `json:"rental,omitempty"`
	Appreciation string `json:"appreciation,omitempty"`
}

// Property is a listing as displayed to end users.
type Property struct {
	ID          string
	Title       string
	Price       float64 // base or starting price, currency-agnostic
	Location    string
	Beds        int
	Baths       int
	Sqft        int
	SqmPrice    float64
	Image       string
	Images      []string
	Description string
	Type        string
	Status      string
	Featured    bool
	TitleType   string // e.g. "C of O", "Governor's Consent"
	Landmarks   []string
	Amenities   []string
	Units       []PropertyUnit
	PaymentPlans []PaymentPlan
	Insights    *InvestmentInsights
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PropertyTypes lists the known type categories, in display order.
func PropertyTypes() []string {
	return []string{
		PropertyTypeHouse,
		PropertyTypeCondo,
		PropertyTypeVilla,
		PropertyTypeApartment,
		PropertyTypeLand,
		PropertyTypeCommercial,
	}
}

// ValidPropertyType reports whether t is a known type category.
func ValidPropertyType(t string) bool {
	for _, known := range PropertyTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ValidPropertyStatus reports whether s is a known sale/rental status.
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusForSale, PropertyStatusForRent, PropertyStatusOffPlan, PropertyStatusStillSelling:
		return true
	}
	return false
}
