package models

import "github.com/redpulse/client-go/enums"

// BloodRequest is a hospital's open request for donor blood.
type BloodRequest struct {
	ID            string        `json:"id"`
	BloodType     string        `json:"bloodType"`
	Units         int           `json:"units"`
	Urgency       enums.Urgency `json:"urgency"`
	Hospital      string        `json:"hospital"`
	HospitalType  string        `json:"hospitalType"`
	Address       string        `json:"address"`
	ContactEmail  string        `json:"contactEmail"`
	ContactPhone  string        `json:"contactPhone"`
	Reason        string        `json:"reason"`
	PatientAge    string        `json:"patientAge"`
	PatientGender string        `json:"patientGender"`
	RequestedDate string        `json:"requestedDate"`
	RequiredBy    string        `json:"requiredBy"`
	Status        string        `json:"status"`
	Coordinates   Coordinates   `json:"coordinates"`
	Distance      float64       `json:"distance"`
	State         string        `json:"state"`
}

// Notification is an in-app alert addressed to a single user.
type Notification struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Type           string        `json:"type"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	BloodRequestID string        `json:"bloodRequestId,omitempty"`
	Distance       float64       `json:"distance,omitempty"`
	CreatedAt      string        `json:"createdAt"`
	Read           bool          `json:"read"`
	Urgency        enums.Urgency `json:"urgency"`
}
