package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"audio-marketplace/internal/client"
)

// NotificationService composes and dispatches the transactional emails the
// fulfillment flow depends on. One synchronous send per call; the caller
// decides whether a relay failure is fatal.
type NotificationService interface {
	SendPurchaseDelivery(toEmail, title, description, audioURL string) error
	SendFreeAudioDelivery(toEmail, title, description, audioURL string) error
	SendAdminPaymentAlert(customerEmail, description string, amountPaid decimal.Decimal, sessionID string) error
	// NotifyAdminRequestAsync dispatches the new-request alert in the
	// background. The send error is received on a channel and logged,
	// never surfaced to the parent request.
	NotifyAdminRequestAsync(customerEmail, description string)
}

type notificationServiceImpl struct {
	mailer     client.Mailer
	adminEmail string
	logger     *zap.Logger
}

func NewNotificationService(mailer client.Mailer, adminEmail string, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

func (s *notificationServiceImpl) SendPurchaseDelivery(toEmail, title, description, audioURL string) error {
	if description == "" {
		description = "Enjoy your premium audio file!"
	}

	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
		<div style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px; padding: 20px; border: 1px solid #e0e0e0;">
			<h2 style="color: #2c3e50;">%s</h2>
			<p>%s</p>
			<hr style="border: none; border-top: 1px solid #e0e0e0;">
			<p>Your premium audio is ready. Click below to <strong>download</strong> your file:</p>
			<p><a href="%s" style="display: inline-block; background-color: #0066cc; color: #ffffff; padding: 10px 16px; text-decoration: none; border-radius: 4px; font-weight: bold;">Open Audio</a></p>
			<p style="color: #777; font-size: 14px;">If the button does not work, copy this link into your browser:</p>
			<p style="word-break: break-all; font-size: 14px;"><a href="%s">%s</a></p>
			<hr style="border: none; border-top: 1px solid #e0e0e0;">
			<p style="font-size: 14px; color: #777;">Thank you for your purchase.</p>
		</div>
	</div>`, title, description, audioURL, audioURL, audioURL)

	return s.mailer.Send(&client.Mail{
		To:       toEmail,
		Subject:  "Your Premium Audio: " + title,
		HTMLBody: body,
	})
}

func (s *notificationServiceImpl) SendFreeAudioDelivery(toEmail, title, description, audioURL string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
		<h2>%s</h2>
		<p>%s</p>
		<p>Listen or download here: <a href="%s">%s</a></p>
	</div>`, title, description, audioURL, audioURL)

	return s.mailer.Send(&client.Mail{
		To:       toEmail,
		Subject:  "Your Free Audio: " + title,
		HTMLBody: body,
	})
}

func (s *notificationServiceImpl) SendAdminPaymentAlert(customerEmail, description string, amountPaid decimal.Decimal, sessionID string) error {
	body := fmt.Sprintf(`
	<h2>New Custom Audio Request Received</h2>
	<p><strong>Customer Email:</strong> %s</p>
	<p><strong>Payment Status:</strong> Paid ($%s)</p>
	<p><strong>Audio Request Description:</strong></p>
	<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 10px 0;">%s</div>
	<p><strong>Order ID:</strong> %s</p>
	<p>Please process this request within 24 hours.</p>`,
		customerEmail, amountPaid.StringFixed(2), description, sessionID)

	return s.mailer.Send(&client.Mail{
		To:       s.adminEmail,
		Subject:  "New Custom Audio Request",
		HTMLBody: body,
	})
}

func (s *notificationServiceImpl) NotifyAdminRequestAsync(customerEmail, description string) {
	deadline := time.Now().Add(24 * time.Hour)

	body := fmt.Sprintf(`
	<h3>New Premium Audio Order</h3>
	<p><strong>Customer Email:</strong> %s</p>
	<p><strong>Audio Request:</strong></p>
	<p>%s</p>
	<p><strong>Delivery Deadline:</strong> %s</p>`,
		customerEmail, description, deadline.Format(time.RFC1123))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.mailer.Send(&client.Mail{
			To:       s.adminEmail,
			Subject:  "New Custom Audio Request",
			HTMLBody: body,
		})
	}()
	go func() {
		if err := <-errCh; err != nil {
			s.logger.Error("admin request notification failed",
				zap.String("customer_email", customerEmail),
				zap.Error(err))
		}
	}()
}
