package notify

import (
	"bytes"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2" // SMTP mail library
)

// decisionTemplate renders the body of a decision email.
var decisionTemplate = template.Must(template.New("decision").Parse(`<h2>Hello {{.Name}},</h2>
<p>Your leave request has been <strong>{{.StatusUpper}}</strong>.</p>
<p><strong>Leave Details:</strong></p>
<ul>
  <li>Type: {{.Data.LeaveType}}</li>
  <li>From: {{.From}}</li>
  <li>To: {{.To}}</li>
  {{if .Data.Reason}}<li>Reason: {{.Data.Reason}}</li>{{end}}
</ul>
{{if .Data.AdminComments}}<p><strong>Admin Comments:</strong> {{.Data.AdminComments}}</p>{{end}}
<p>Best regards,<br/>Leave Management System</p>`))

// Mailer sends decision emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer // SMTP connection settings
	from   string         // Sender address
}

// NewMailer returns a Mailer for the given SMTP endpoint.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one notification. Dial, send, close per message; volume
// is a handful of decision emails, not a mail queue.
func (m *Mailer) Send(n Notification) error {
	body, err := renderDecision(n)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.Recipient)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

// renderDecision fills the decision template.
func renderDecision(n Notification) (string, error) {
	var buf bytes.Buffer
	err := decisionTemplate.Execute(&buf, struct {
		Name        string
		StatusUpper string
		From        string
		To          string
		Data        DecisionData
	}{
		Name:        n.Data.Name,
		StatusUpper: strings.ToUpper(n.Data.Status),
		From:        n.Data.FromDate.Format("Mon, 02 Jan 2006"),
		To:          n.Data.ToDate.Format("Mon, 02 Jan 2006"),
		Data:        n.Data,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
