package email

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	gomessage "github.com/emersion/go-message"
)

// extractBody picks the primary readable text of a raw RFC 5322 message.
// Preference order: first text/plain part, then the first text/html part
// reduced to plain text, then the first part of any type. Single-part
// messages use their only body.
func extractBody(raw []byte) (string, error) {
	entity, err := gomessage.Read(bytes.NewReader(raw))
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return "", &FetchError{Op: "decode", Err: err}
	}

	mr := entity.MultipartReader()
	if mr == nil {
		body, err := io.ReadAll(entity.Body)
		if err != nil {
			return "", &FetchError{Op: "decode", Err: err}
		}
		ct, _, _ := entity.Header.ContentType()
		if strings.HasPrefix(ct, "text/html") {
			return htmlToText(string(body)), nil
		}
		return string(body), nil
	}

	var htmlBody, firstPart string
	if body, ok := scanParts(mr, &htmlBody, &firstPart); ok {
		return body, nil
	}
	if htmlBody != "" {
		return htmlToText(htmlBody), nil
	}
	return firstPart, nil
}

// scanParts walks a multipart tree depth-first looking for a text/plain
// part. The fallbacks accumulate across nesting levels: htmlBody holds the
// first text/html seen anywhere, firstPart the first leaf of any other
// type, so a message with no plain text still yields a body.
func scanParts(mr gomessage.MultipartReader, htmlBody, firstPart *string) (string, bool) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return "", false
		}
		ct, _, _ := part.Header.ContentType()

		switch {
		case strings.HasPrefix(ct, "text/plain"):
			if body, err := io.ReadAll(part.Body); err == nil {
				return string(body), true
			}

		case strings.HasPrefix(ct, "text/html") && *htmlBody == "":
			if body, err := io.ReadAll(part.Body); err == nil {
				*htmlBody = string(body)
			}

		case strings.HasPrefix(ct, "multipart/"):
			if nested := part.MultipartReader(); nested != nil {
				if body, ok := scanParts(nested, htmlBody, firstPart); ok {
					return body, true
				}
			}

		default:
			if *firstPart == "" {
				if body, err := io.ReadAll(part.Body); err == nil {
					*firstPart = string(body)
				}
			}
		}
	}
}

// htmlToText strips an HTML body down to readable text.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, head, meta, link").Remove()
	doc.Find("p, div, br, h1, h2, h3, h4, h5, h6, li, tr").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
	})
	return strings.TrimSpace(doc.Text())
}

// previewText flattens body text to a single line and truncates it to
// maxLen runes, appending a truncation marker when cut.
func previewText(body string, maxLen int) string {
	flat := strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(flat) <= maxLen {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:maxLen]) + "..."
}
