package secondary

// VideoValidator checks a raw video link and returns its normalized form.
// Implementations are pure: no I/O visible to the caller.
type VideoValidator interface {
	Validate(raw string) (string, error)
}
