package models

import "github.com/redpulse/client-go/enums"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Profile is the donor/recipient domain record paired with every session.
type Profile struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Email       string      `json:"email"`
	FullName    string      `json:"fullName"`
	Role        enums.Role  `json:"role"`
	BloodType   string      `json:"bloodType"`
	Location    string      `json:"location"`
	PhoneNumber string      `json:"phoneNumber"`
	DateOfBirth string      `json:"dateOfBirth"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Age         int         `json:"age"`
	CreatedAt   string      `json:"createdAt"`
	IsAvailable bool        `json:"isAvailable"`
	Coordinates Coordinates `json:"coordinates"`
}
