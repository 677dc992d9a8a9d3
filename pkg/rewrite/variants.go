package rewrite

import "strings"

// Variants holds the four case forms derived from a snake_case
// identifier.
type Variants struct {
	Snake  string
	Title  string
	Kebab  string
	Pascal string
}

// CaseVariants derives the case forms used for template substitution.
//
// The input must already be in snake_case (underscore-separated
// lowercase tokens); behavior on other inputs is unspecified. Title
// lowercases each token's remainder while Pascal leaves it unchanged —
// the asymmetry is load-bearing for round-trip compatibility with
// existing templates and must not be "fixed".
func CaseVariants(identifier string) Variants {
	tokens := strings.Split(identifier, "_")

	titleWords := make([]string, len(tokens))
	pascalWords := make([]string, len(tokens))
	for i, token := range tokens {
		titleWords[i] = capitalizeLower(token)
		pascalWords[i] = capitalizeKeep(token)
	}

	return Variants{
		Snake:  identifier,
		Title:  strings.Join(titleWords, " "),
		Kebab:  strings.ReplaceAll(identifier, "_", "-"),
		Pascal: strings.Join(pascalWords, ""),
	}
}

// capitalizeLower uppercases the first character and lowercases the
// remainder.
func capitalizeLower(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}

// capitalizeKeep uppercases the first character and leaves the
// remainder as-is.
func capitalizeKeep(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}
