package utils

import "strings"

// RecipientFilter decides whether an address may receive automated mail.
// The allow-list variant exists because sandboxed sending providers only
// accept whitelisted recipients; it is an operational gate, not a security
// control.
type RecipientFilter func(email string) bool

// AllowAll sends to anyone
func AllowAll(string) bool { return true }

// AllowListFilter permits only the listed addresses, case-insensitive.
// An empty list means no restriction.
func AllowListFilter(list []string) RecipientFilter {
	if len(list) == 0 {
		return AllowAll
	}

	allowed := make(map[string]bool, len(list))
	for _, email := range list {
		allowed[strings.ToLower(strings.TrimSpace(email))] = true
	}

	return func(email string) bool {
		return allowed[strings.ToLower(strings.TrimSpace(email))]
	}
}
