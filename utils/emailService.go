package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
	"vle/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Virtual Learning <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5C9DD6; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>VIRTUAL LEARNING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Virtual Learning. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Virtual Learning"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Virtual Learning</strong>! Your account has been created successfully.</p>
		<p>You can now browse modules, enrol and start learning.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendDeadlineReminderEmail warns a student about an assignment due tomorrow.
// Sent synchronously so the reminder job can account for failures.
func SendDeadlineReminderEmail(email, name, assignmentTitle, moduleName string, deadline time.Time) error {
	subject := fmt.Sprintf("Reminder: %s is due tomorrow", assignmentTitle)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that the assignment <strong>%s</strong> in <strong>%s</strong> is due on <strong>%s</strong>.</p>
		<div class="info-box">
			You have not submitted yet. Upload your work before the deadline to be graded.
		</div>
	`, name, assignmentTitle, moduleName, deadline.Format("January 2, 2006 15:04"))

	return SendEmail([]string{email}, subject, getEmailTemplate("Assignment Due Tomorrow", body))
}

// SendGradePostedEmail tells a student a grade broadcast went out
func SendGradePostedEmail(email, name, moduleName string) {
	subject := "Grades posted: " + moduleName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>New grades have been posted in <strong>%s</strong>.</p>
		<p>Login to your dashboard to view your result and feedback.</p>
	`, name, moduleName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Grades Posted", body))
}
