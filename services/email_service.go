package services

import (
	"fmt"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderReceivedEmail is sent at order creation: the order details plus
// how to pay. For venmo orders it includes the payment reference the customer
// must put in the note; for card orders it points back at the checkout page.
// Nothing here claims a payment happened, that's the confirmation email.
func (es *EmailService) SendOrderReceivedEmail(order *tables.Order, slot *tables.TimeSlot) error {
	subject, body := es.buildOrderReceivedEmail(order, slot)
	return es.SendEmail([]string{order.Email, es.cfg.Email.SupportEmail}, subject, body)
}

func (es *EmailService) buildOrderReceivedEmail(order *tables.Order, slot *tables.TimeSlot) (string, string) {
	var itemsBuilder strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s</li>", item.Quantity, item.BagelTypeName)
	}
	for _, addOn := range order.AddOns {
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s (add-on)</li>", addOn.Quantity, addOn.AddOnTypeName)
	}

	totalFormatted := fmt.Sprintf("$%.2f", float64(order.TotalPriceCents)/100)
	slotFormatted := fmt.Sprintf("%s, %s", slot.Date.Format("Monday, January 2"), slot.TimeOfDay)

	paymentSection := fmt.Sprintf(`
				<p><strong>Payment by card:</strong></p>
				<p>Finish checking out in the payment window for <strong>%s</strong>.
				We'll email you a confirmation as soon as the payment clears.</p>`,
		totalFormatted)
	if order.PaymentMethod == tables.PaymentMethodVenmo {
		reference := lib.GeneratePaymentReference(order.Id)
		paymentSection = fmt.Sprintf(`
					<p><strong>Payment via Venmo:</strong></p>
					<p>Send <strong>%s</strong> to <strong>%s</strong> and include
					<strong>%s</strong> in the payment note so we can match it to your order.</p>`,
			totalFormatted, es.cfg.Payment.VenmoHandle, reference)
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #D2691E; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Thanks for your order!</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your bagel order is in. Here are the details:</p>

					<div class="order-details">
						<h4>Pickup: <strong>%s</strong></h4>
						<h4>Your order:</h4>
						<ul>%s</ul>
						<p><strong>Total: %s</strong></p>
					</div>

					%s

					<p>Pickup is at %s. Questions? Reply to this email or reach us at %s.</p>
				</div>

				<div class="footer">
					<p>Paige's Bagels | Fresh Out of the Oven</p>
				</div>
			</div>
		</body>
		</html>
	`, order.Name, slotFormatted, itemsBuilder.String(), totalFormatted, paymentSection,
		es.cfg.Email.PickupAddr, es.cfg.Email.SupportEmail)

	subject := fmt.Sprintf("Your bagel order for %s", slotFormatted)

	return subject, emailBody
}

// SendOrderConfirmationEmail acknowledges the payment once the order moves to
// confirmed. No payment instructions here, those went out with the received
// email.
func (es *EmailService) SendOrderConfirmationEmail(order *tables.Order, slot *tables.TimeSlot) error {
	subject, body := es.buildOrderConfirmationEmail(order, slot)
	return es.SendEmail([]string{order.Email}, subject, body)
}

func (es *EmailService) buildOrderConfirmationEmail(order *tables.Order, slot *tables.TimeSlot) (string, string) {
	totalFormatted := fmt.Sprintf("$%.2f", float64(order.TotalPriceCents)/100)
	slotFormatted := fmt.Sprintf("%s, %s", slot.Date.Format("Monday, January 2"), slot.TimeOfDay)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #D2691E; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Payment received, you're confirmed!</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>We've received your payment of <strong>%s</strong>. Your order for
					<strong>%s</strong> is confirmed.</p>
					<p>We'll email you again when your bagels are bagged and ready at %s.</p>
				</div>

				<div class="footer">
					<p>Paige's Bagels | Fresh Out of the Oven</p>
				</div>
			</div>
		</body>
		</html>
	`, order.Name, totalFormatted, slotFormatted, es.cfg.Email.PickupAddr)

	subject := fmt.Sprintf("Order confirmed for %s", slotFormatted)

	return subject, emailBody
}

// SendOrderReadyEmail tells the customer their order is bagged and waiting.
func (es *EmailService) SendOrderReadyEmail(order *tables.Order, slot *tables.TimeSlot) error {
	slotFormatted := fmt.Sprintf("%s, %s", slot.Date.Format("Monday, January 2"), slot.TimeOfDay)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #D2691E; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Your bagels are ready!</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your order for <strong>%s</strong> is bagged and ready for pickup at %s.</p>
					<p>See you soon!</p>
				</div>

				<div class="footer">
					<p>Paige's Bagels | Fresh Out of the Oven</p>
				</div>
			</div>
		</body>
		</html>
	`, order.Name, slotFormatted, es.cfg.Email.PickupAddr)

	return es.SendEmail([]string{order.Email}, "Your bagels are ready for pickup", emailBody)
}

// SendMerchReceiptEmail sends the paid-order receipt for a merch checkout.
func (es *EmailService) SendMerchReceiptEmail(order *tables.MerchOrder) error {
	var itemsBuilder strings.Builder
	for _, line := range order.Lines {
		label := line.ItemName
		if line.ItemSize != "" {
			label = fmt.Sprintf("%s (%s)", line.ItemName, line.ItemSize)
		}
		lineTotal := fmt.Sprintf("$%.2f", float64(line.UnitPriceCents*int64(line.Quantity))/100)
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s - %s</li>", line.Quantity, label, lineTotal)
	}

	totalFormatted := fmt.Sprintf("$%.2f", float64(order.TotalCents)/100)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #D2691E; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Thanks for repping the shop!</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your payment went through on %s. Here's your receipt:</p>

					<div class="order-details">
						<ul>%s</ul>
						<p><strong>Total: %s</strong></p>
					</div>

					<p>We'll email you again when your order ships. Questions? Reach us at %s.</p>
				</div>

				<div class="footer">
					<p>Paige's Bagels | Fresh Out of the Oven</p>
				</div>
			</div>
		</body>
		</html>
	`, order.Name, time.Now().Format("January 2, 2006"), itemsBuilder.String(),
		totalFormatted, es.cfg.Email.SupportEmail)

	return es.SendEmail([]string{order.Email, es.cfg.Email.SupportEmail}, "Your merch receipt", emailBody)
}
