package models

// ConnectivityStatus is the aggregate of one diagnostic sweep. It is
// recomputed on every check and never persisted.
type ConnectivityStatus struct {
	Internet bool `json:"internet"`
	Backend  bool `json:"backend"`
	Database bool `json:"database"`
	Auth     bool `json:"auth"`

	Details ConnectivityDetails `json:"details"`
}

type ConnectivityDetails struct {
	InternetError string `json:"internetError"`
	BackendError  string `json:"backendError"`
	DatabaseError string `json:"databaseError"`
	AuthError     string `json:"authError"`
}
