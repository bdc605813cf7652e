package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"
)

const updatedHTMLTmpl = `
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #2563eb;">Event Update Notification</h2>
    <p>Dear <strong>{{.Name}}</strong>,</p>
    <p>The event you registered for has been updated:</p>
    <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <p><strong>📅 Event:</strong> {{.EventTitle}}</p>
      <p><strong>🔄 Updated:</strong> {{.UpdatedFields}}</p>
    </div>
    <p>Please review the updated event details on the EventSynk platform.</p>
    <p>If you have any questions, please contact the event organiser.</p>
    <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
    <p style="color: #6b7280; font-size: 12px;">Best regards,<br>EventSynk Team</p>
  </body>
</html>`

const cancelledHTMLTmpl = `
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #dc2626;">Event Cancellation Notice</h2>
    <p>Dear <strong>{{.Name}}</strong>,</p>
    <p>We regret to inform you that the following event has been cancelled:</p>
    <div style="background-color: #fee2e2; padding: 15px; border-left: 4px solid #dc2626; border-radius: 5px; margin: 20px 0;">
      <p><strong>📅 Event:</strong> {{.EventTitle}}</p>
      <p><strong>👤 Organiser:</strong> {{.OrganiserName}}</p>
    </div>
    <p>We apologise for any inconvenience this may cause.</p>
    <p>Your registration has been automatically cancelled.</p>
    <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
    <p style="color: #6b7280; font-size: 12px;">Best regards,<br>EventSynk Team</p>
  </body>
</html>`

var (
	updatedTmpl   = template.Must(template.New("updated").Parse(updatedHTMLTmpl))
	cancelledTmpl = template.Must(template.New("cancelled").Parse(cancelledHTMLTmpl))
)

// EmailNotifier sends one individually addressed email per participant.
// No batching, no retry, no deduplication across overlapping broadcasts.
type EmailNotifier struct {
	sender *EmailSender
	repo   Repository
}

func NewEmailNotifier(sender *EmailSender, repo Repository) *EmailNotifier {
	return &EmailNotifier{sender: sender, repo: repo}
}

func (n *EmailNotifier) Notify(changeKind string, details ChangeDetails, participants []Participant) error {
	log.Printf("📧 EMAIL NOTIFICATION - %s", changeLabel(changeKind))
	log.Printf("   Event: %s", details.EventTitle)
	log.Printf("   Recipients: %d registered participants", len(participants))

	var subject string
	switch changeKind {
	case ChangeUpdated:
		subject = fmt.Sprintf("⚠️ Event Update: %s", details.EventTitle)
	case ChangeCancelled:
		subject = fmt.Sprintf("🚫 Event Cancelled: %s", details.EventTitle)
	default:
		return fmt.Errorf("unknown change kind: %s", changeKind)
	}

	success, failed := 0, 0
	for _, p := range participants {
		body, html := n.render(changeKind, details, p)
		if err := n.sender.Send(p.Email, subject, body, html); err != nil {
			failed++
		} else {
			success++
		}
	}

	n.logBroadcast(changeKind, subject, participants, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d emails failed", failed, success+failed)
	}
	return nil
}

func (n *EmailNotifier) render(changeKind string, details ChangeDetails, p Participant) (body, html string) {
	type view struct {
		Name          string
		EventTitle    string
		UpdatedFields string
		OrganiserName string
	}
	v := view{
		Name:          p.Name,
		EventTitle:    details.EventTitle,
		UpdatedFields: strings.Join(details.UpdatedFields, ", "),
		OrganiserName: details.OrganiserName,
	}
	if v.OrganiserName == "" {
		v.OrganiserName = "the organiser"
	}

	var buf bytes.Buffer
	switch changeKind {
	case ChangeUpdated:
		body = fmt.Sprintf(`Dear %s,

The event you registered for has been updated:

Event: %s
Updated Information: %s

Please review the updated event details on the EventSynk platform.

Best regards,
EventSynk Team`, v.Name, v.EventTitle, v.UpdatedFields)
		if err := updatedTmpl.Execute(&buf, v); err == nil {
			html = buf.String()
		}

	case ChangeCancelled:
		body = fmt.Sprintf(`Dear %s,

We regret to inform you that the following event has been cancelled:

Event: %s
Organiser: %s

Your registration has been automatically cancelled.

Best regards,
EventSynk Team`, v.Name, v.EventTitle, v.OrganiserName)
		if err := cancelledTmpl.Execute(&buf, v); err == nil {
			html = buf.String()
		}
	}
	return body, html
}

// logBroadcast persists a delivery record; failures here are absorbed.
func (n *EmailNotifier) logBroadcast(changeKind, subject string, participants []Participant, failed int) {
	if n.repo == nil {
		return
	}

	emails := make([]string, 0, len(participants))
	for _, p := range participants {
		emails = append(emails, p.Email)
	}

	status := "sent"
	if failed > 0 {
		status = "partial"
	}

	if err := n.repo.CreateLog(&NotificationLog{
		Channel:    ChannelEmail,
		Kind:       changeKind,
		Subject:    subject,
		Recipients: toJSON(emails),
		Status:     status,
	}); err != nil {
		log.Printf("⚠️ Failed to persist notification log: %v", err)
	}
}
