package utils

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhoneNumber normalizes a raw phone number to E.164. The region is an
// explicit parameter (ISO 3166-1 alpha-2, e.g. "JO"); there is no shared
// formatter instance or process-wide default.
func FormatPhoneNumber(raw, region string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number %q: %w", raw, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("phone number %q is not valid for region %s", raw, region)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
