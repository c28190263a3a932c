/*
Package placeholder provides pluggable token resolution for chat messages.

# Overview

A placeholder is a {token} substring in a message or format template.
Providers map (subject, token) pairs to replacement text; the Registry holds
the live provider set; ReplaceAll drives a single substitution pass.

# Basic Usage

Register providers and resolve a message:

	reg := placeholder.NewRegistry[User]()
	reg.Register(placeholder.NewAttrs(map[string]func(User) string{
	    "username": func(u User) string { return u.Name },
	}))

	out, _, err := reg.Replace(alice, "<{username}> hi")
	// out: "<Alice> hi"

# Resolution Semantics

Tokens are scanned left to right in the original text. For each occurrence,
providers are queried until one answers; the first answer wins. Resolution
replaces every occurrence of the exact {token} literal, and replacement
values are never rescanned, so self-referential replacements cannot loop.

Unresolved tokens are not errors: they stay in the output verbatim so a
message is still deliverable when a provider is missing.

# Provider Identity

The Registry is an identity set: Register reports whether the provider value
was newly added, and Unregister removes that same value. Providers are
therefore expected to be comparable, which every constructor in this package
guarantees by returning pointers.

# Concurrency

The Registry may be mutated from any goroutine while resolution runs
concurrently. Resolution iterates a snapshot, so readers never observe a
partially mutated set.
*/
package placeholder
