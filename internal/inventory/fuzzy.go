package inventory

import "strings"

// fuzzyMatch narrows candidates token by token: each query token keeps
// only the names containing it, case-insensitively. A match is returned
// only when exactly one candidate survives; zero or several survivors
// are both reported as no match, leaving disambiguation to the caller.
func fuzzyMatch(query string, names []string) (string, bool) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return "", false
	}

	candidates := names
	for _, token := range tokens {
		var kept []string
		for _, name := range candidates {
			if strings.Contains(strings.ToLower(name), token) {
				kept = append(kept, name)
			}
		}
		candidates = kept
		if len(candidates) == 0 {
			return "", false
		}
	}

	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0], true
}
