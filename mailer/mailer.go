package mailer

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
)

// Mailer sends order confirmation emails over SMTP. One attempt per order,
// no retry; callers decide what a failure means.
type Mailer struct {
	host   string
	port   string
	user   string
	pass   string
	sender string
}

func New(host, port, user, pass, sender string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, sender: sender}
}

// SendOrderConfirmation sends the formatted confirmation message to the
// customer's address.
func (m *Mailer) SendOrderConfirmation(name, email string, grandTotal int) error {
	subject := "Order Confirmation - Audiophile"
	body := fmt.Sprintf(
		"<h2>Thank you, %s</h2>"+
			"<p>Your order was successfully placed.</p>"+
			"<p><strong>Total:</strong> $%s</p>"+
			"<p>You will receive your items soon.</p>",
		name, FormatAmount(grandTotal),
	)

	var msg strings.Builder
	msg.WriteString("From: " + m.sender + "\r\n")
	msg.WriteString("To: " + email + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{email}, []byte(msg.String()))
}

// FormatAmount renders a whole currency amount with thousands separators,
// e.g. 2999 -> "2,999".
func FormatAmount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteString(",")
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteString(",")
		}
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}
