package repository

import "regexp"

// regexQuote escapes user input embedded in substring regex filters.
func regexQuote(s string) string {
	return regexp.QuoteMeta(s)
}
