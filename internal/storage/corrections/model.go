package corrections

import "strings"

// tokenSeparator joins description tokens into a single column. Tokens are
// produced from letter and digit runs only, so the separator can never occur
// inside one.
const tokenSeparator = "|"

func encodeTokens(tokens []string) string {
	return strings.Join(tokens, tokenSeparator)
}

func decodeTokens(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, tokenSeparator)
}
