package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/utils"
)

// GetProfile fetches the authenticated user's profile. In demo mode the
// emulator repairs a missing profile from the account directory before
// answering.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	body, err := c.Call(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(body)
}

// UpdateProfile applies a shallow merge of fields onto the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]interface{}) (*models.Profile, error) {
	body, err := c.Call(ctx, http.MethodPut, "/profile", fields)
	if err != nil {
		return nil, err
	}
	return decodeProfile(body)
}

// SearchDonors queries available donors, optionally filtered by blood type
// and location.
func (c *Client) SearchDonors(ctx context.Context, bloodType, location string) ([]models.Profile, error) {
	params := url.Values{}
	if bloodType != "" {
		params.Set("bloodType", bloodType)
	}
	if location != "" {
		params.Set("location", location)
	}
	endpoint := "/donors"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	raw := gjson.GetBytes(body, "donors").Raw
	if raw == "" {
		return nil, nil
	}
	var donors []models.Profile
	if err := utils.BytesToStruct([]byte(raw), &donors); err != nil {
		return nil, fmt.Errorf("decode donors: %w", err)
	}
	return donors, nil
}

// UpdateAvailability flips the donor's availability flag.
func (c *Client) UpdateAvailability(ctx context.Context, isAvailable bool) error {
	_, err := c.Call(ctx, http.MethodPut, "/availability", map[string]bool{"isAvailable": isAvailable})
	return err
}

// CreateBloodRequest registers a new blood request.
func (c *Client) CreateBloodRequest(ctx context.Context, request models.BloodRequest) error {
	_, err := c.Call(ctx, http.MethodPost, "/blood-request", request)
	return err
}

// ListBloodRequests fetches all open blood requests.
func (c *Client) ListBloodRequests(ctx context.Context) ([]models.BloodRequest, error) {
	body, err := c.Call(ctx, http.MethodGet, "/blood-requests", nil)
	if err != nil {
		return nil, err
	}
	return decodeRequests(body)
}

// NearbyRequests fetches open requests matching the user's blood type near
// their location.
func (c *Client) NearbyRequests(ctx context.Context, userID string) ([]models.BloodRequest, error) {
	body, err := c.Call(ctx, http.MethodGet, "/nearby-requests/"+userID, nil)
	if err != nil {
		return nil, err
	}
	return decodeRequests(body)
}

// Notifications fetches the user's notification feed.
func (c *Client) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	body, err := c.Call(ctx, http.MethodGet, "/notifications/"+userID, nil)
	if err != nil {
		return nil, err
	}

	raw := gjson.GetBytes(body, "notifications").Raw
	if raw == "" {
		return nil, nil
	}
	var notifications []models.Notification
	if err := utils.BytesToStruct([]byte(raw), &notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	endpoint := fmt.Sprintf("/notifications/%s/%s/read", userID, notificationID)
	_, err := c.Call(ctx, http.MethodPut, endpoint, nil)
	return err
}

// SignUpRemote submits a registration payload to the custom signup endpoint,
// which also stores the extended profile fields.
func (c *Client) SignUpRemote(ctx context.Context, payload map[string]interface{}) ([]byte, error) {
	return c.Call(ctx, http.MethodPost, "/signup", payload)
}

func decodeProfile(body []byte) (*models.Profile, error) {
	raw := gjson.GetBytes(body, "profile").Raw
	if raw == "" {
		return nil, fmt.Errorf("response carries no profile")
	}

	var profile models.Profile
	if err := utils.BytesToStruct([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

func decodeRequests(body []byte) ([]models.BloodRequest, error) {
	raw := gjson.GetBytes(body, "requests").Raw
	if raw == "" {
		return nil, nil
	}
	var requests []models.BloodRequest
	if err := utils.BytesToStruct([]byte(raw), &requests); err != nil {
		return nil, fmt.Errorf("decode blood requests: %w", err)
	}
	return requests, nil
}
