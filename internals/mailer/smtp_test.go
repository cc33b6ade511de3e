package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("noreply@edutrack.app", EmailData{
		To:      "student@example.com",
		Subject: "EduTrack - Your Password Reset Code",
		Body:    "<p>hello</p>",
	})

	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd == -1 {
		t.Fatal("no blank line between headers and body")
	}
	headers := msg[:headerEnd]
	body := msg[headerEnd+4:]

	for _, want := range []string{
		"From: noreply@edutrack.app",
		"To: student@example.com",
		"Subject: EduTrack - Your Password Reset Code",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	} {
		if !strings.Contains(headers, want) {
			t.Errorf("headers missing %q", want)
		}
	}
	if body != "<p>hello</p>" {
		t.Errorf("body = %q, want the raw html", body)
	}
}

func TestOTPTemplateRendersCode(t *testing.T) {
	var sb strings.Builder
	if err := otpTemplate.Execute(&sb, map[string]string{"Code": "482913"}); err != nil {
		t.Fatalf("execute template: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, "482913") {
		t.Error("rendered email does not contain the code")
	}
	if !strings.Contains(html, "expire in 10 minutes") {
		t.Error("rendered email does not mention the expiry")
	}
}
