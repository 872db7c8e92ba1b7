package demo

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Request is the tagged set of operations the emulator answers. One variant
// per supported endpoint shape; unsupported calls become GenericRequest so
// callers degrade instead of crashing (see Config.StrictEndpoints).
type Request interface {
	demoRequest()
}

type ProfileGetRequest struct{}

type ProfileUpdateRequest struct {
	Fields map[string]interface{}
}

type NearbyRequestsRequest struct {
	UserID string
}

type NotificationsRequest struct {
	UserID string
}

type NotificationReadRequest struct {
	UserID         string
	NotificationID string
}

type AcceptBloodRequestRequest struct {
	RequestID string
}

type GenericRequest struct {
	Method   string
	Endpoint string
}

func (ProfileGetRequest) demoRequest()         {}
func (ProfileUpdateRequest) demoRequest()      {}
func (NearbyRequestsRequest) demoRequest()     {}
func (NotificationsRequest) demoRequest()      {}
func (NotificationReadRequest) demoRequest()   {}
func (AcceptBloodRequestRequest) demoRequest() {}
func (GenericRequest) demoRequest()            {}

// ParseEndpoint maps a raw method+endpoint pair onto a Request variant. The
// facade uses this to intercept calls issued with string endpoints.
func ParseEndpoint(method, endpoint string, body []byte) Request {
	path := endpoint
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	switch {
	case path == "/profile" && method == http.MethodGet:
		return ProfileGetRequest{}
	case path == "/profile" && method == http.MethodPut:
		fields := map[string]interface{}{}
		_ = json.Unmarshal(body, &fields)
		return ProfileUpdateRequest{Fields: fields}
	case strings.HasPrefix(path, "/nearby-requests/"):
		return NearbyRequestsRequest{UserID: strings.TrimPrefix(path, "/nearby-requests/")}
	case strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read") && method == http.MethodPut:
		rest := strings.TrimPrefix(strings.TrimSuffix(path, "/read"), "/notifications/")
		userID, notificationID := rest, ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			userID, notificationID = rest[:i], rest[i+1:]
		}
		return NotificationReadRequest{UserID: userID, NotificationID: notificationID}
	case strings.HasPrefix(path, "/notifications/"):
		return NotificationsRequest{UserID: strings.TrimPrefix(path, "/notifications/")}
	case path == "/accept-blood-request":
		var payload struct {
			RequestID string `json:"requestId"`
		}
		_ = json.Unmarshal(body, &payload)
		return AcceptBloodRequestRequest{RequestID: payload.RequestID}
	default:
		return GenericRequest{Method: method, Endpoint: path}
	}
}
