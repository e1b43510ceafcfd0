package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRoleApproved(toEmail, fullName, newRole string) error
	SendRoleRejected(toEmail, fullName, targetRole, reason string) error
	SendCertificationDecision(toEmail, propertyLabel, status, notes string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendRoleApproved(toEmail, fullName, newRole string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your account upgrade was approved")

	dashboardLink := fmt.Sprintf("%s/dashboard", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Congratulations, %s!</h2>
			<p>Your request to become a <strong>%s</strong> has been approved.</p>
			<p>Your new capabilities are active the next time you sign in.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Go to Dashboard</a>
		</div>
	`, fullName, newRole, dashboardLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send approval mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Approval mail sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendRoleRejected(toEmail, fullName, targetRole, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Update on your account upgrade request")

	if reason == "" {
		reason = "The submitted documents did not meet the review requirements."
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hello %s,</h2>
			<p>Your request to become a <strong>%s</strong> was not approved.</p>
			<p><em>%s</em></p>
			<p>You can submit a new request with updated documents at any time.</p>
		</div>
	`, fullName, targetRole, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send rejection mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Rejection mail sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendCertificationDecision(toEmail, propertyLabel, status, notes string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Lease certification %s", status))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Lease Certification Update</h2>
			<p>The certification for <strong>%s</strong> is now <strong>%s</strong>.</p>
			<p>%s</p>
		</div>
	`, propertyLabel, status, notes)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send certification mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Certification mail sent to %s\n", toEmail)
	return nil
}
