package gateway

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// describeBody produces a message for a body that is not a JSON envelope,
// typically an HTML error page from a proxy sitting in front of the backend.
func describeBody(raw []byte, status int) string {
	if title := htmlHeadline(raw); title != "" {
		return title
	}

	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("unexpected response from server: %d %s", status, text)
	}
	return "unexpected response from server"
}

func htmlHeadline(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
	if err != nil {
		return ""
	}

	for _, selector := range []string{"title", "h1"} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return strings.Join(strings.Fields(text), " ")
		}
	}
	return ""
}
