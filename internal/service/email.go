package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendWelcome(_ context.Context, email, name, orgName string) error {
	subject := fmt.Sprintf("Welcome to %s", orgName)
	body := fmt.Sprintf("Hello %s,\n\nYour organization '%s' has been created and your owner account is ready.\n\nYou can now sign in and start setting up agencies, vehicles and your team.\n\nBest regards,\nThe FleetRent Team", name, orgName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendSubscriptionExpiryReminder(_ context.Context, email, orgName string, expiresOn time.Time) error {
	subject := fmt.Sprintf("Subscription expiring soon - %s", orgName)
	body := fmt.Sprintf("Hello,\n\nThe subscription for '%s' expires on %s. Renew before then to avoid service interruption.\n\nBest regards,\nThe FleetRent Team", orgName, expiresOn.Format("January 2, 2006"))
	return s.send(email, "", subject, body)
}
