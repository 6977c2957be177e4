package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/policy"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, email, customerName, serviceName string, start time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nYour appointment for %s is confirmed for %s.\n\nBest regards,\nThe Vlossom Team",
		customerName, serviceName, start.Format("Monday, Jan 2 at 3:04 PM"))
	return s.send(email, "Appointment Confirmed", body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, email, serviceName, cancelledBy string, refundCents int32) error {
	body := fmt.Sprintf("Hello,\n\nYour appointment for %s was cancelled by the %s.", serviceName, cancelledBy)
	if refundCents > 0 {
		body += fmt.Sprintf("\n\nA refund of %s has been issued to your account.", policy.FormatCents(refundCents))
	}
	body += "\n\nBest regards,\nThe Vlossom Team"
	return s.send(email, "Appointment Cancelled", body)
}

func (s *emailService) SendAppointmentReminder(ctx context.Context, email, serviceName string, start time.Time) error {
	body := fmt.Sprintf("Hello,\n\nThis is a reminder of your upcoming appointment for %s on %s.\n\nBest regards,\nThe Vlossom Team",
		serviceName, start.Format("Monday, Jan 2 at 3:04 PM"))
	return s.send(email, "Upcoming Appointment Reminder", body)
}

func (s *emailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, stylistName, chairName string) error {
	body := fmt.Sprintf("Hello,\n\n%s has requested to rent your chair '%s'. Review the request in your dashboard.\n\nBest regards,\nThe Vlossom Team",
		stylistName, chairName)
	return s.send(ownerEmail, "New Chair Rental Request", body)
}

func (s *emailService) SendRentalDecisionNotification(ctx context.Context, stylistEmail, chairName, decision, note string) error {
	body := fmt.Sprintf("Hello,\n\nYour rental request for chair '%s' has been %s.", chairName, decision)
	if note != "" {
		body += fmt.Sprintf("\n\nNote from the owner: %s", note)
	}
	body += "\n\nBest regards,\nThe Vlossom Team"
	return s.send(stylistEmail, "Chair Rental Request Update", body)
}
