// Package omnibox turns free-form address-bar input into a canonical
// absolute URL.
package omnibox

import (
	"strings"

	"nectar/page"
)

// DefaultScheme is prepended to input that carries no scheme of its own.
const DefaultScheme = "https"

// ErrEmptyInput is returned when the input is empty or whitespace-only.
var ErrEmptyInput = &page.Error{Kind: page.ErrEmptyInput, Message: "empty URL"}

// Normalize trims the raw input and ensures it carries a scheme,
// prepending scheme (or DefaultScheme when scheme is "") if the input
// has no "://" separator. This is a thin syntactic step: no punycode
// or percent-encoding normalization happens here.
func Normalize(raw, scheme string) (string, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return "", ErrEmptyInput
	}

	if !strings.Contains(input, "://") {
		if scheme == "" {
			scheme = DefaultScheme
		}
		input = scheme + "://" + input
	}

	return input, nil
}
