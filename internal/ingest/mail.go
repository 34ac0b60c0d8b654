package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// ExtractPlainBody parses a raw RFC 822 message and returns its text/plain
// content. Multipart messages are walked depth-first and the first plain
// part wins. Content-Transfer-Encoding of base64 and quoted-printable is
// decoded.
func ExtractPlainBody(raw []byte) (string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("ExtractPlainBody: parse message: %w", err)
	}

	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}
	body, found, err := findPlainPart(msg.Body, contentType, msg.Header.Get("Content-Transfer-Encoding"))
	if err != nil {
		return "", fmt.Errorf("ExtractPlainBody: %w", err)
	}
	if !found {
		return "", fmt.Errorf("ExtractPlainBody: no text/plain part in message")
	}
	return body, nil
}

func findPlainPart(r io.Reader, contentType, transferEncoding string) (string, bool, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false, fmt.Errorf("parse media type: %w", err)
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return "", false, fmt.Errorf("multipart message without boundary")
		}
		mr := multipart.NewReader(r, boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return "", false, nil
			}
			if err != nil {
				return "", false, fmt.Errorf("read part: %w", err)
			}
			body, found, err := findPlainPart(part, part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"))
			if err != nil {
				return "", false, err
			}
			if found {
				return body, true, nil
			}
		}
	}

	if mediaType != "text/plain" {
		return "", false, nil
	}

	decoded, err := decodeTransfer(r, transferEncoding)
	if err != nil {
		return "", false, err
	}
	return decoded, true, nil
}

func decodeTransfer(r io.Reader, encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(data), nil
}
