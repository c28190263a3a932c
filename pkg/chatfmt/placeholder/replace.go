package placeholder

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

// tokenPattern matches {identifier} where identifier is one or more
// characters excluding braces. The empty token {} never matches.
var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Stats reports the outcome of a replacement pass.
type Stats struct {
	// Resolved counts token occurrences a provider resolved.
	Resolved int

	// Unresolved counts token occurrences no provider resolved.
	// Those tokens are left verbatim in the output.
	Unresolved int
}

// ProviderError reports a provider that panicked during resolution.
// Providers are expected to return ("", false) rather than fail; a panic is
// treated as fatal to the single replacement call it occurred in.
type ProviderError struct {
	// Token is the token being resolved when the provider panicked.
	Token string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("placeholder provider panicked resolving {%s}: %v", e.Token, e.Value)
}

// Tokens returns the distinct token names found in text, in scan order.
// Returns nil if text contains no tokens.
func Tokens(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var tokens []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}

// ReplaceAll resolves placeholder tokens in text using the given providers.
//
// Tokens are scanned left to right in the original text. Each occurrence is
// resolved independently: providers are queried in slice order and the first
// one to answer wins. A resolved token is replaced everywhere it appears as
// the exact literal {token}; an unresolved token is left verbatim.
//
// Replacement values are never rescanned, so a provider mapping "a" to the
// literal "{a}" yields "{a}" rather than looping.
//
// The only error condition is a provider panic, surfaced as *ProviderError.
func ReplaceAll[S any](subject S, text string, providers []Provider[S]) (string, Stats, error) {
	var stats Stats

	// Fast path: nothing to scan or nobody to ask.
	if text == "" || len(providers) == 0 {
		return text, stats, nil
	}

	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		literal, token := m[0], m[1]

		replacement, ok, err := resolveToken(subject, token, providers)
		if err != nil {
			return "", stats, err
		}
		if !ok {
			stats.Unresolved++
			continue
		}

		stats.Resolved++
		text = strings.ReplaceAll(text, literal, replacement)
	}

	return text, stats, nil
}

// resolveToken queries providers in order until one answers.
func resolveToken[S any](subject S, token string, providers []Provider[S]) (string, bool, error) {
	for _, p := range providers {
		replacement, ok, err := tryResolve(p, subject, token)
		if err != nil {
			return "", false, err
		}
		if ok {
			return replacement, true, nil
		}
	}
	return "", false, nil
}

// tryResolve calls a single provider, converting a panic into *ProviderError.
func tryResolve[S any](p Provider[S], subject S, token string) (replacement string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProviderError{
				Token: token,
				Value: r,
				Stack: string(debug.Stack()),
			}
		}
	}()

	replacement, ok = p.Resolve(subject, token)
	return replacement, ok, nil
}
