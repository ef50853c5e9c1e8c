// Package mail composes notification emails and hands them to the SMTP relay.
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyjain/hyjain-api/internal/model"
)

// DefaultName greets recipients who did not give a name.
const DefaultName = "there"

// IST is Indian Standard Time. India observes no daylight saving.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// ErrUnknownKind is returned for a notification kind with no template.
var ErrUnknownKind = errors.New("unknown notification kind")

// Message is a composed email ready for dispatch.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// templateData is what the templates interpolate. html/template escapes every field.
type templateData struct {
	Brand     string
	Name      string
	Timestamp string
	Location  string
	IP        string
}

// Composer renders notification emails.
type Composer struct {
	brand string
	now   func() time.Time
}

// NewComposer creates a Composer. brand appears in subjects and sign-offs.
func NewComposer(brand string) *Composer {
	if brand == "" {
		brand = "Hyjain"
	}
	return &Composer{brand: brand, now: time.Now}
}

// WithClock returns a copy of the composer that reads time from now.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	cp := *c
	cp.now = now
	return &cp
}

// Compose renders the message for req. loc is used only by kinds that carry
// time and location details and may be nil otherwise.
func (c *Composer) Compose(req model.NotificationRequest, loc *model.Location) (*Message, error) {
	tmpl, ok := templates[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	data := templateData{
		Brand: c.brand,
		Name:  strings.TrimSpace(req.Name),
	}
	if data.Name == "" {
		data.Name = DefaultName
	}
	if req.Kind.NeedsLocation() {
		data.Timestamp = FormatTimestamp(c.now())
		data.Location = model.LocationUnavailable
		data.IP = req.SourceIP
		if loc != nil {
			data.Location = loc.Label
			data.IP = loc.IP
		}
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render %s body: %w", req.Kind, err)
	}

	return &Message{
		To:      req.Email,
		Subject: strings.ReplaceAll(tmpl.subject, "{{.Brand}}", c.brand),
		HTML:    body.String(),
	}, nil
}

// FormatTimestamp renders t for display, e.g. "October 17, 2026 at 03:04 PM (IST)".
func FormatTimestamp(t time.Time) string {
	return t.In(IST).Format("January 2, 2006 at 03:04 PM") + " (IST)"
}
