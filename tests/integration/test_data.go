package integration

import (
	"fmt"
	"time"

	"github.com/srpnetwork/realty-api/internal/models"
)

// TestMember generates unique member credentials using timestamp
func TestMember(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123"
	return
}

// SampleProperty builds a realistic listing for seeding
func SampleProperty(title string) *models.Property {
	return &models.Property{
		Title:       title,
		Price:       250_000_000,
		Location:    "Lekki Phase 1, Lagos",
		Beds:        4,
		Baths:       4,
		Sqft:        3200,
		SqmPrice:    840_000,
		Image:       "https://cdn.test.local/listings/main.jpg",
		Images:      []string{"https://cdn.test.local/listings/1.jpg"},
		Description: "Fully serviced terrace in a gated estate",
		Type:        models.PropertyTypeApartment,
		Status:      models.PropertyStatusForSale,
		Featured:    true,
		TitleType:   "Governor's Consent",
		Landmarks:   []string{"Lekki Conservation Centre"},
		Amenities:   []string{"24/7 Power", "Swimming Pool", "Gym"},
	}
}
