package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digitsPattern = regexp.MustCompile(`^\d+$`)

// parseID converts a command argument into a positive numeric ID.
// Returns an error with a helpful message for the common mistakes.
func parseID(arg, entityType string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%s ID is required", entityType)
	}

	// "#3" is how positions are printed, not IDs
	if strings.HasPrefix(arg, "#") {
		return 0, fmt.Errorf("invalid %s ID '%s'. Use --position to address a demon by its place on the list", entityType, arg)
	}

	if !digitsPattern.MatchString(arg) {
		return 0, fmt.Errorf("invalid %s ID '%s'. Expected a positive number", entityType, arg)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID '%s'. Expected a positive number", entityType, arg)
	}
	return id, nil
}
