// Package notify fans order events out to the configured channels:
// transactional email to the client, Telegram alerts to the admin chat
// and WhatsApp click-to-chat links. Deliveries are fire-and-forget; a
// failed channel is logged and never fails the request that caused it.
package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"designflow-backend/internal/config"
	"designflow-backend/internal/models"
)

type Notifier struct {
	email         *EmailSender
	telegram      *TelegramSender
	baseURL       string
	adminWhatsApp string
	log           *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Notifier {
	n := &Notifier{
		baseURL:       cfg.BaseURL,
		adminWhatsApp: cfg.AdminWhatsApp,
		log:           log,
	}
	if cfg.EmailEnabled() {
		n.email = NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Warn("SMTP not configured, order emails disabled")
	}
	if cfg.TelegramEnabled() {
		n.telegram = NewTelegramSender(TelegramAPIBase, cfg.TelegramBotToken, cfg.TelegramChatID)
	} else {
		log.Warn("Telegram not configured, admin alerts disabled")
	}
	return n
}

func (n *Notifier) trackingURL(orderID string) string {
	return fmt.Sprintf("%s/tracking?id=%s", n.baseURL, orderID)
}

// HelpLink returns a click-to-chat URL for a client asking about their
// order, or "" when no admin number is configured.
func (n *Notifier) HelpLink(orderID string) string {
	if n.adminWhatsApp == "" {
		return ""
	}
	return BuildWhatsAppHelpLink(n.adminWhatsApp, orderID)
}

// OrderPlaced sends the client confirmation and the admin alert for a
// new submission.
func (n *Notifier) OrderPlaced(order *models.Order) {
	go func() {
		if n.email != nil {
			if err := n.email.SendConfirmation(order, n.trackingURL(order.ID)); err != nil {
				n.log.WithField("order_id", order.ID).WithError(err).Error("Failed to send confirmation email")
			}
		}
		if n.telegram != nil {
			if err := n.telegram.SendNewOrderAlert(order); err != nil {
				n.log.WithField("order_id", order.ID).WithError(err).Error("Failed to send Telegram alert")
			}
		}
	}()
}

// StatusChanged sends the client the status update email.
func (n *Notifier) StatusChanged(order *models.Order, newStatus models.Status) {
	if n.email == nil {
		return
	}
	go func() {
		if err := n.email.SendStatusUpdate(order, newStatus, n.trackingURL(order.ID)); err != nil {
			n.log.WithFields(logrus.Fields{
				"order_id": order.ID,
				"status":   newStatus,
			}).WithError(err).Error("Failed to send status update email")
		}
	}()
}
