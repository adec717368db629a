package demon

// List sections a position can fall into.
const (
	SectionMain     = "main"
	SectionExtended = "extended"
	SectionLegacy   = "legacy"
)

// Section returns the list section for a position given the configured sizes.
// Positions up to listSize are main, up to extendedSize extended, the rest legacy.
func Section(position, listSize, extendedSize int) string {
	switch {
	case position <= listSize:
		return SectionMain
	case position <= extendedSize:
		return SectionExtended
	default:
		return SectionLegacy
	}
}
