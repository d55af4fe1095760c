package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"designflow-backend/internal/models"
)

// EmailSender delivers transactional mail over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (e *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return e.dialer.DialAndSend(m)
}

// SendConfirmation mails the order receipt after a successful submission.
func (e *EmailSender) SendConfirmation(order *models.Order, trackingURL string) error {
	subject := fmt.Sprintf("Order Confirmation - Tracking #%s", order.ID)
	keywords := order.Keywords
	if keywords == "" {
		keywords = "N/A"
	}
	body := fmt.Sprintf(`Dear %s,

Thank you for choosing DesignFlow! Your order has been successfully placed and is now Pending Review.

== ORDER DETAILS ==
ID: %s
Service: %s
Price: $%g
Estimated Completion: %s

== CREATIVE BRIEF ==
Industry: %s
Keywords: %s

You can track the live status of your design here:
%s

We will be in touch shortly if we need any more details.

Best regards,
The DesignFlow Team
`, order.ClientName, order.ID, order.ServiceType, order.Price, order.EstimatedCompletion,
		order.Industry, keywords, trackingURL)

	return e.send(order.Email, subject, body)
}

// SendStatusUpdate mails the client about a lifecycle change.
func (e *EmailSender) SendStatusUpdate(order *models.Order, newStatus models.Status, trackingURL string) error {
	subject, message := StatusTemplate(order.ID, newStatus)
	body := fmt.Sprintf(`Dear %s,

%s

You can track progress here:
%s

Best regards,
The DesignFlow Team
`, order.ClientName, message, trackingURL)

	return e.send(order.Email, subject, body)
}

// StatusTemplate returns the email subject and message for a lifecycle
// change.
func StatusTemplate(orderID string, status models.Status) (subject, message string) {
	switch status {
	case models.StatusReviewing:
		subject = fmt.Sprintf("We are reviewing your order #%s", orderID)
		message = "We have received your requirements and are currently reviewing them to ensure we have everything we need. We will start processing shortly."
	case models.StatusInProgress:
		subject = fmt.Sprintf("Work Started: Order #%s", orderID)
		message = "Great news! Work has officially begun on your project. Sit tight, we are crafting something amazing."
	case models.StatusDraftSent:
		subject = fmt.Sprintf("Draft Ready: Order #%s", orderID)
		message = "A draft is ready for your review! Please visit the tracking link below to view the draft and provide feedback or approve it."
	case models.StatusWaitingPayment:
		subject = fmt.Sprintf("Payment Required: Order #%s", orderID)
		message = "Thank you for approving the draft! Your project is now waiting for payment verification. Please contact the admin to complete the payment so we can release the final files."
	case models.StatusCompleted:
		subject = fmt.Sprintf("Project Completed: Order #%s", orderID)
		message = "Your project has been marked as Completed! You can now download your final assets. Thank you for working with us!"
	case models.StatusRevision:
		subject = fmt.Sprintf("Revision Request Received: Order #%s", orderID)
		message = "We have received your revision request. We will review your notes and get back to work on the changes."
	default:
		subject = fmt.Sprintf("Update on Order #%s", orderID)
		message = fmt.Sprintf("The status of your order has been updated to: %s", status)
	}
	return subject, message
}
