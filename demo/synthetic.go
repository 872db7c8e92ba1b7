package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redpulse/client-go/enums"
	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/utils"
)

// syntheticBloodRequests builds the fixed set of nearby requests. Count,
// urgency, and ordering are deterministic for a given blood type; only the
// relative timestamps move with the clock.
func syntheticBloodRequests(bloodType string) []models.BloodRequest {
	now := time.Now()
	return []models.BloodRequest{
		{
			ID:            "BR-2024-001",
			BloodType:     bloodType,
			Units:         2,
			Urgency:       enums.UrgencyCritical,
			Hospital:      "AIIMS Delhi",
			HospitalType:  "Government Hospital",
			Address:       "Ansari Nagar, New Delhi, Delhi 110029",
			ContactEmail:  "emergency@aiims.edu",
			ContactPhone:  "+91 11 2658 8500",
			Reason:        "Emergency surgery - motor vehicle accident",
			PatientAge:    "34",
			PatientGender: "Male",
			RequestedDate: now.Add(-2 * time.Hour).UTC().Format(time.RFC3339),
			RequiredBy:    now.Add(6 * time.Hour).UTC().Format(time.RFC3339),
			Status:        enums.RequestStatusActive,
			Coordinates:   models.Coordinates{Lat: 28.5672, Lng: 77.2100},
			Distance:      2.3,
			State:         "Delhi",
		},
		{
			ID:            "BR-2024-002",
			BloodType:     bloodType,
			Units:         1,
			Urgency:       enums.UrgencyHigh,
			Hospital:      "Apollo Hospital Delhi",
			HospitalType:  "Private Hospital",
			Address:       "Sarita Vihar, New Delhi, Delhi 110076",
			ContactEmail:  "bloodbank@apollodelhi.com",
			ContactPhone:  "+91 11 2692 5858",
			Reason:        "Scheduled surgery - cardiac procedure",
			PatientAge:    "67",
			PatientGender: "Female",
			RequestedDate: now.Add(-4 * time.Hour).UTC().Format(time.RFC3339),
			RequiredBy:    now.Add(24 * time.Hour).UTC().Format(time.RFC3339),
			Status:        enums.RequestStatusActive,
			Coordinates:   models.Coordinates{Lat: 28.5355, Lng: 77.2636},
			Distance:      4.7,
			State:         "Delhi",
		},
		{
			ID:            "BR-2024-003",
			BloodType:     bloodType,
			Units:         3,
			Urgency:       enums.UrgencyMedium,
			Hospital:      "Fortis Hospital Gurgaon",
			HospitalType:  "Private Hospital",
			Address:       "Sector 44, Gurugram, Haryana 122002",
			ContactEmail:  "bloodbank@fortis.in",
			ContactPhone:  "+91 124 496 2200",
			Reason:        "Blood transfusion for anemia treatment",
			PatientAge:    "28",
			PatientGender: "Female",
			RequestedDate: now.Add(-6 * time.Hour).UTC().Format(time.RFC3339),
			RequiredBy:    now.Add(48 * time.Hour).UTC().Format(time.RFC3339),
			Status:        enums.RequestStatusActive,
			Coordinates:   models.Coordinates{Lat: 28.4595, Lng: 77.0266},
			Distance:      8.1,
			State:         "Haryana",
		},
	}
}

func syntheticNotifications(userID string) []models.Notification {
	now := time.Now()
	return []models.Notification{
		{
			ID:             fmt.Sprintf("notif-%s-001", userID),
			UserID:         userID,
			Type:           "blood_request",
			Title:          "Critical Blood Request Near You",
			Message:        "O+ blood urgently needed at AIIMS Delhi - 2 units required for emergency surgery",
			BloodRequestID: "BR-2024-001",
			Distance:       2.3,
			CreatedAt:      now.Add(-2 * time.Hour).UTC().Format(time.RFC3339),
			Read:           false,
			Urgency:        enums.UrgencyCritical,
		},
		{
			ID:        fmt.Sprintf("notif-%s-002", userID),
			UserID:    userID,
			Type:      "system",
			Title:     "Blood Donation Eligibility Reminder",
			Message:   "You're eligible to donate blood again! Your last donation was over 8 weeks ago.",
			CreatedAt: now.Add(-24 * time.Hour).UTC().Format(time.RFC3339),
			Read:      true,
			Urgency:   enums.UrgencyLow,
		},
		{
			ID:             fmt.Sprintf("notif-%s-003", userID),
			UserID:         userID,
			Type:           "blood_request",
			Title:          "New Blood Request at Apollo Hospital",
			Message:        "A+ blood needed for cardiac surgery - 1 unit required within 24 hours",
			BloodRequestID: "BR-2024-002",
			Distance:       4.7,
			CreatedAt:      now.Add(-4 * time.Hour).UTC().Format(time.RFC3339),
			Read:           false,
			Urgency:        enums.UrgencyHigh,
		},
	}
}

// fallbackProfile writes a default profile when reconstruction by email is
// impossible, so a live session is never left without one.
func (e *Emulator) fallbackProfile(ctx context.Context) (*models.Profile, error) {
	account, _ := Lookup("donor@demo.com")
	profile := account.Profile
	profile.ID = "fallback_" + uuid.NewString()
	profile.UserID = profile.ID
	profile.FullName = "Demo User"
	profile.Email = "demo@fallback.com"

	profileJSON, err := utils.StructToBytes(profile)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyDemoProfile, string(profileJSON)); err != nil {
		return nil, err
	}
	return &profile, nil
}
