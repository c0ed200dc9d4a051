package resume

import (
	"regexp"
	"strings"

	"resumatch/internal/model"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	linkedInPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	phonePattern    = regexp.MustCompile(`(?:\+\d{1,3}[-.]?)?(?:\(\d{3}\)|\b\d{3})[-.]?\d{3}[-.]?\d{4}\b`)
	// locationPattern matches "City, ST", "City, ST 12345" or "City, COUNTRY" at the start of a line,
	// optionally behind a comma-terminated prefix such as a street address.
	locationPattern = regexp.MustCompile(`(?m)^(?:[^,\n]*?,[ \t]*)?([A-Za-z][A-Za-z \t]*,[ \t]*[A-Z]{2,}\b(?:[ \t]+\d{5}\b)?)`)
)

// ExtractContact runs the independent contact searches over normalized text.
// Each field takes the first match from the top of the document.
func ExtractContact(text string) model.ContactInfo {
	text = collapseSpaces(text)

	var c model.ContactInfo
	c.Email = strings.TrimSpace(emailPattern.FindString(text))
	if url := strings.TrimSpace(linkedInPattern.FindString(text)); url != "" {
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}
		c.LinkedIn = url
	}
	c.Phone = strings.TrimSpace(phonePattern.FindString(text))
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		c.Location = strings.TrimSpace(m[1])
	}
	return c
}

// looksLikeContact reports whether a line carries an email, phone number or location.
func looksLikeContact(line string) bool {
	return emailPattern.MatchString(line) ||
		phonePattern.MatchString(line) ||
		locationPattern.MatchString(line)
}
