package format

// Select returns the first rule in order whose predicate holds for the
// subject, and false if none does.
//
// The engine imposes no implicit default: callers wanting a guaranteed
// match end the rule list with a rule whose When is nil (or Always).
// Given stable predicate answers, selection is deterministic for a fixed
// (subject, rules) pair.
func Select[S any](subject S, rules []Rule[S]) (Rule[S], bool) {
	for _, r := range rules {
		if r.Matches(subject) {
			return r, true
		}
	}
	var zero Rule[S]
	return zero, false
}
