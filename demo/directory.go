// Package demo makes the client fully usable with zero network access. It
// holds the fixed demo account directory and an emulator answering the
// backend's endpoint surface with deterministic synthetic payloads.
package demo

import (
	"github.com/redpulse/client-go/enums"
	"github.com/redpulse/client-go/models"
)

// DemoPassword is shared by every demo account and publicly documented, so
// failures surface it as a hint instead of a generic credential error.
const DemoPassword = "Demo123!"

// Account pairs a demo credential with its ground-truth profile.
type Account struct {
	Password string
	Profile  models.Profile
}

// directory is the fixed, read-only demo account directory. It is ground
// truth for demo authentication and profile reconstruction.
var directory = map[string]Account{
	"donor@demo.com": {
		Password: DemoPassword,
		Profile: models.Profile{
			ID:          "7f4c7fad-549f-4efa-8ad2-d716f0c5a155",
			UserID:      "7f4c7fad-549f-4efa-8ad2-d716f0c5a155",
			Email:       "donor@demo.com",
			FullName:    "Arjun Sharma",
			Role:        enums.RoleUser,
			BloodType:   enums.BloodTypeOPos,
			Location:    "Mumbai, Maharashtra",
			PhoneNumber: "+91 98765 43210",
			DateOfBirth: "1990-05-15",
			City:        "Mumbai",
			State:       "Maharashtra",
			Country:     "India",
			Age:         34,
			CreatedAt:   "2024-01-01T00:00:00Z",
			IsAvailable: true,
			Coordinates: models.Coordinates{Lat: 19.0760, Lng: 72.8777},
		},
	},
	"patient@demo.com": {
		Password: DemoPassword,
		Profile: models.Profile{
			ID:          "b8e9c2f1-456a-4b7c-9d8e-f1a2b3c4d5e6",
			UserID:      "b8e9c2f1-456a-4b7c-9d8e-f1a2b3c4d5e6",
			Email:       "patient@demo.com",
			FullName:    "Priya Patel",
			Role:        enums.RoleUser,
			BloodType:   enums.BloodTypeAPos,
			Location:    "Delhi, Delhi",
			PhoneNumber: "+91 87654 32109",
			DateOfBirth: "1985-08-22",
			City:        "Delhi",
			State:       "Delhi",
			Country:     "India",
			Age:         39,
			CreatedAt:   "2024-01-01T00:00:00Z",
			Coordinates: models.Coordinates{Lat: 28.6139, Lng: 77.2090},
		},
	},
	"hospital@demo.com": {
		Password: DemoPassword,
		Profile: models.Profile{
			ID:          "c9f0d3e2-567b-5c8d-ae9f-02b3c4d5e6f7",
			UserID:      "c9f0d3e2-567b-5c8d-ae9f-02b3c4d5e6f7",
			Email:       "hospital@demo.com",
			FullName:    "Dr. Rajesh Kumar",
			Role:        enums.RoleUser,
			BloodType:   enums.BloodTypeBPos,
			Location:    "Bangalore, Karnataka",
			PhoneNumber: "+91 76543 21098",
			DateOfBirth: "1980-12-10",
			City:        "Bangalore",
			State:       "Karnataka",
			Country:     "India",
			Age:         44,
			CreatedAt:   "2024-01-01T00:00:00Z",
			Coordinates: models.Coordinates{Lat: 12.9716, Lng: 77.5946},
		},
	},
}

// IsDemoEmail reports whether email is reserved for a demo account.
func IsDemoEmail(email string) bool {
	_, ok := directory[email]
	return ok
}

// Lookup returns the directory entry for email.
func Lookup(email string) (Account, bool) {
	account, ok := directory[email]
	return account, ok
}

// Emails lists the reserved demo addresses.
func Emails() []string {
	return []string{"donor@demo.com", "patient@demo.com", "hospital@demo.com"}
}
