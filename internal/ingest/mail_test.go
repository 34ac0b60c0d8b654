package ingest

import (
	"strings"
	"testing"
)

func TestExtractPlainBody_Simple(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"To: me@example.com\r\n" +
		"Subject: Debit alert\r\n" +
		"\r\n" +
		"You spent NGN 4,500 at Cafe Neo.\r\n"

	body, err := ExtractPlainBody([]byte(raw))
	if err != nil {
		t.Fatalf("ExtractPlainBody failed: %v", err)
	}
	if !strings.Contains(body, "Cafe Neo") {
		t.Errorf("body = %q, want it to contain the merchant", body)
	}
}

func TestExtractPlainBody_MultipartPrefersPlain(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: multipart/alternative; boundary=\"sep\"\r\n" +
		"\r\n" +
		"--sep\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>You spent money</p>\r\n" +
		"--sep\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"You spent money at Store A.\r\n" +
		"--sep--\r\n"

	body, err := ExtractPlainBody([]byte(raw))
	if err != nil {
		t.Fatalf("ExtractPlainBody failed: %v", err)
	}
	if strings.Contains(body, "<p>") {
		t.Errorf("body = %q, want the plain part, not HTML", body)
	}
	if !strings.Contains(body, "Store A") {
		t.Errorf("body = %q, want the plain part content", body)
	}
}

func TestExtractPlainBody_QuotedPrintable(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Amount: =E2=82=A65,000\r\n"

	body, err := ExtractPlainBody([]byte(raw))
	if err != nil {
		t.Fatalf("ExtractPlainBody failed: %v", err)
	}
	if !strings.Contains(body, "₦5,000") {
		t.Errorf("body = %q, want the decoded currency symbol", body)
	}
}

func TestExtractPlainBody_Base64(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"SGVsbG8gd29ybGQ=\r\n"

	body, err := ExtractPlainBody([]byte(raw))
	if err != nil {
		t.Fatalf("ExtractPlainBody failed: %v", err)
	}
	if !strings.Contains(body, "Hello world") {
		t.Errorf("body = %q, want decoded base64 content", body)
	}
}

func TestExtractPlainBody_NoPlainPart(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: multipart/alternative; boundary=\"sep\"\r\n" +
		"\r\n" +
		"--sep\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>HTML only</p>\r\n" +
		"--sep--\r\n"

	if _, err := ExtractPlainBody([]byte(raw)); err == nil {
		t.Error("ExtractPlainBody() = nil error, want error for HTML-only message")
	}
}

func TestExtractPlainBody_Malformed(t *testing.T) {
	if _, err := ExtractPlainBody([]byte("not an email")); err == nil {
		t.Error("ExtractPlainBody() = nil error, want parse error")
	}
}
