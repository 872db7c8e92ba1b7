package enums

const (
	BloodTypeAPos  = "A+"
	BloodTypeANeg  = "A-"
	BloodTypeBPos  = "B+"
	BloodTypeBNeg  = "B-"
	BloodTypeABPos = "AB+"
	BloodTypeABNeg = "AB-"
	BloodTypeOPos  = "O+"
	BloodTypeONeg  = "O-"
)

type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

const (
	RequestStatusActive    = "Active"
	RequestStatusFulfilled = "Fulfilled"
	RequestStatusExpired   = "Expired"
)
