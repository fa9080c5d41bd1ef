package importer

import (
	"net/url"
	"strings"
)

// defaultAllowedOrigins is the fixed set of source origins imports are
// accepted from. Matching is exact on scheme+host.
var defaultAllowedOrigins = []string{
	"https://www.pattayapartypoolvilla.com",
	"http://www.pattayapartypoolvilla.com",
	"https://pattayapartypoolvilla.com",
	"http://pattayapartypoolvilla.com",
}

// ValidateURL checks a raw listing URL against the default origin
// allow-list. It is pure and performs no I/O; a non-nil result is
// always a *ValidationError with a user-facing Thai message.
func ValidateURL(raw string) error {
	return validateURL(raw, defaultAllowedOrigins)
}

func validateURL(raw string, origins []string) error {
	t := strings.TrimSpace(raw)
	if t == "" {
		return &ValidationError{Message: "กรุณาระบุ URL"}
	}
	if !strings.HasPrefix(t, "http") {
		return &ValidationError{Message: "URL ต้องขึ้นต้นด้วย http หรือ https"}
	}
	if !originAllowed(t, origins) {
		return &ValidationError{Message: "รองรับเฉพาะลิงก์จาก pattayapartypoolvilla.com"}
	}
	return nil
}

func originAllowed(raw string, origins []string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	origin := u.Scheme + "://" + u.Host
	for _, o := range origins {
		if origin == o {
			return true
		}
	}
	return false
}
