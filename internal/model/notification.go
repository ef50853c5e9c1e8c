package model

import "fmt"

// NotificationKind identifies one of the fixed email templates.
type NotificationKind string

// Notification kinds.
const (
	NotificationSignup       NotificationKind = "signup"
	NotificationLogin        NotificationKind = "login"
	NotificationEnquiry      NotificationKind = "enquiry"
	NotificationFeedback     NotificationKind = "feedback"
	NotificationSubscription NotificationKind = "subscription"
)

// AllNotificationKinds lists every kind in a stable order.
var AllNotificationKinds = []NotificationKind{
	NotificationSignup,
	NotificationLogin,
	NotificationEnquiry,
	NotificationFeedback,
	NotificationSubscription,
}

// IsValid checks if the kind is known.
func (k NotificationKind) IsValid() bool {
	for _, known := range AllNotificationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// NeedsLocation reports whether the kind carries time and location details.
func (k NotificationKind) NeedsLocation() bool {
	return k == NotificationSignup || k == NotificationLogin
}

// NotificationRequest is the ephemeral payload for one notification.
type NotificationRequest struct {
	Kind     NotificationKind
	Email    string
	Name     string
	SourceIP string
}

// Location is the outcome of geolocation enrichment.
type Location struct {
	Label string
	IP    string
}

// LocationUnavailable is the placeholder label when lookup fails.
const LocationUnavailable = "Location not available"

// FormatLocationLabel renders a city/region pair.
func FormatLocationLabel(city, region string) string {
	return fmt.Sprintf("%s, %s", city, region)
}
