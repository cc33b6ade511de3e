package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"time"

	"edutrack_backend/internals/configs"
)

const dialTimeout = 10 * time.Second

type EmailData struct {
	To      string
	Subject string
	Body    string
}

// SendEmail delivers one message over SMTP. One attempt, bounded dial
// timeout; the caller decides what a failure means.
func SendEmail(data EmailData) error {
	addr := fmt.Sprintf("%s:%d", configs.SMTPHost, configs.SMTPPort)

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("failed to reach mail server: %w", err)
	}
	client, err := smtp.NewClient(conn, configs.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(nil); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}
	if configs.SMTPUsername != "" || configs.SMTPPassword != "" {
		auth := smtp.PlainAuth("", configs.SMTPUsername, configs.SMTPPassword, configs.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(configs.SMTPFrom); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if err := client.Rcpt(data.To); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if _, err := w.Write([]byte(BuildMessage(configs.SMTPFrom, data))); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return client.Quit()
}

func BuildMessage(from string, data EmailData) string {
	msg := fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", data.To)
	msg += fmt.Sprintf("Subject: %s\r\n", data.Subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=UTF-8\r\n"
	msg += "\r\n"
	msg += data.Body
	return msg
}

var otpTemplate = template.Must(template.New("reset_otp").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .code { font-size: 32px; font-weight: bold; color: #007bff; letter-spacing: 5px; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>EduTrack - Password Reset Code</h2>
        <p>Your password reset code is:</p>
        <div class="code">{{.Code}}</div>
        <p>This code will expire in 10 minutes.</p>
        <div class="footer">
            <p>If you didn't request a password reset, please ignore this email.</p>
        </div>
    </div>
</body>
</html>
`))

// SendResetOTP emails the plaintext reset code. Only the hash is stored
// server-side.
func SendResetOTP(email, code string) error {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]string{"Code": code}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return SendEmail(EmailData{
		To:      email,
		Subject: "EduTrack - Your Password Reset Code",
		Body:    body.String(),
	})
}
