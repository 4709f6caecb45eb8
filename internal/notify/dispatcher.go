package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Event types forwarded to the mail relay.
const (
	EventNewRegistration = "NEW_REGISTRATION"
	EventApproved        = "APPROVED"
)

// Recipient identifies one addressee for a fan-out notification.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Dispatcher renders and sends notification emails. All dispatch is
// best-effort from the caller's perspective: failures are returned for
// logging but must never fail the primary action that triggered them.
type Dispatcher struct {
	sender       EmailSender
	adminAddress string
	baseURL      string
	logger       *slog.Logger
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(sender EmailSender, adminAddress, baseURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:       sender,
		adminAddress: adminAddress,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// RegistrationReceived notifies the admin of a pending registration and
// sends the new member a welcome email. Either send failing does not stop
// the other.
func (d *Dispatcher) RegistrationReceived(ctx context.Context, name, email string) error {
	adminErr := d.sender.Send(ctx, Email{
		To:      d.adminAddress,
		Subject: "New Member Registration - Approval Required",
		Text: fmt.Sprintf("A new user has registered and is awaiting approval:\n\nName: %s\nEmail: %s\n\nPlease log in to the admin panel to approve them: %s/admin",
			name, email, d.baseURL),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px;">
  <h2>New Member Registration</h2>
  <p>A new user has registered and requires your approval to access the network.</p>
  <div style="background: #f4f4f4; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
  </div>
  <a href="%s/admin" style="background: #000; color: #fff; padding: 12px 24px; text-decoration: none; font-weight: bold;">Go to Admin Panel</a>
</div>`, name, email, d.baseURL),
	})
	if adminErr != nil {
		d.logger.Error("admin registration notification failed", slog.Any("error", adminErr))
	}

	welcomeErr := d.sender.Send(ctx, Email{
		To:      email,
		Subject: "Welcome to SRP Network - Registration Received",
		Text: fmt.Sprintf("Hello %s,\n\nThank you for registering with Stunning Realty Partners. Your account is currently pending approval by our administration team. You will receive an email once your access has been granted.\n\nBest regards,\nThe SRP Team",
			name),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px;">
  <h2>Registration Received</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>Thank you for joining the Stunning Realty Partners (SRP) network.</p>
  <div style="background: #f4f4f4; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>Your account is currently <strong>pending approval</strong> by our administration team. This usually takes less than 24 hours.</p>
  </div>
  <p>You will receive another email as soon as your access has been granted.</p>
  <p>Best regards,<br/>The SRP Team</p>
</div>`, name),
	})
	if welcomeErr != nil {
		d.logger.Error("welcome email failed", slog.Any("error", welcomeErr))
	}

	if adminErr != nil {
		return adminErr
	}
	return welcomeErr
}

// MemberApproved tells a member their registration has been approved.
func (d *Dispatcher) MemberApproved(ctx context.Context, name, email string) error {
	return d.sender.Send(ctx, Email{
		To:      email,
		Subject: "SRP Network - Account Approved!",
		Text: fmt.Sprintf("Hello %s,\n\nYour registration with Stunning Realty Partners has been approved! You now have full access to the member dashboard and exclusive portfolio.\n\nLog in here: %s/auth\n\nBest regards,\nThe SRP Team",
			name, d.baseURL),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px;">
  <h2>Access Granted</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>We are pleased to inform you that your registration with Stunning Realty Partners (SRP) has been <strong>approved</strong>!</p>
  <div style="background: #f4f4f4; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>You now have full access to:</p>
    <ul>
      <li>Exclusive Property Portfolio</li>
      <li>Partner Marketing Materials</li>
      <li>Commission Ledger</li>
    </ul>
  </div>
  <a href="%s/auth" style="background: #000; color: #fff; padding: 12px 24px; text-decoration: none; font-weight: bold;">Log In to Dashboard</a>
  <p style="margin-top: 20px;">Best regards,<br/>The SRP Team</p>
</div>`, name, d.baseURL),
	})
}

// ContactSubmission forwards a membership inquiry from the contact form.
func (d *Dispatcher) ContactSubmission(ctx context.Context, name, email, phone, interest, message string) error {
	return d.sender.Send(ctx, Email{
		To:      d.adminAddress,
		Subject: fmt.Sprintf("New SRP Membership Inquiry: %s", interest),
		Text: fmt.Sprintf("New contact form submission:\nName: %s\nEmail: %s\nPhone: %s\nInterest: %s\nMessage: %s",
			name, email, phone, interest, message),
		HTML: fmt.Sprintf(`<h2>New SRP Membership Inquiry</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Interest:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, name, email, phone, interest, message),
	})
}

// PropertyInquiry forwards an inquiry about a specific listing.
func (d *Dispatcher) PropertyInquiry(ctx context.Context, name, email, message, propertyTitle string) error {
	return d.sender.Send(ctx, Email{
		To:      d.adminAddress,
		Subject: fmt.Sprintf("Property Inquiry: %s", propertyTitle),
		Text: fmt.Sprintf("New property inquiry:\nProperty: %s\nName: %s\nEmail: %s\nMessage: %s",
			propertyTitle, name, email, message),
		HTML: fmt.Sprintf(`<h2>New Property Inquiry</h2>
<p><strong>Property:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, propertyTitle, name, email, message),
	})
}

// FavoritePropertyUpdated fans an update notice out to everyone who saved
// the property. Per-recipient failures are counted, not propagated.
func (d *Dispatcher) FavoritePropertyUpdated(ctx context.Context, recipients []Recipient, propertyID, propertyTitle string) int {
	url := fmt.Sprintf("%s/property/%s", d.baseURL, propertyID)

	subject := "Update on a saved property"
	if propertyTitle != "" {
		subject = fmt.Sprintf("Update on a saved property: %s", propertyTitle)
	}

	failures := 0
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}

		titleLine := ""
		if propertyTitle != "" {
			titleLine = fmt.Sprintf("<p><strong>Title:</strong> %s</p>", propertyTitle)
		}

		err := d.sender.Send(ctx, Email{
			To:      r.Email,
			Subject: subject,
			Text:    fmt.Sprintf("A property you saved has been updated.\nView: %s", url),
			HTML: fmt.Sprintf(`<div style="font-family:sans-serif;padding:20px">
  <h2 style="margin:0 0 16px 0;">Property Update</h2>
  <p>A property you saved has been updated.</p>
  %s
  <p><a href="%s" style="background:#000;color:#fff;padding:10px 16px;text-decoration:none;font-weight:bold;">View Property</a></p>
</div>`, titleLine, url),
		})
		if err != nil {
			d.logger.Error("favorite update notification failed",
				slog.String("property_id", propertyID),
				slog.Any("error", err))
			failures++
		}
	}

	return failures
}
