package demon

import "fmt"

// ListShape describes the positions currently stored.
type ListShape struct {
	Count    int
	Min      int
	Max      int
	Distinct int
}

// CheckListShape returns one message per broken list invariant: positions must
// be unique and contiguous from 1. An empty list is valid.
func CheckListShape(shape ListShape) []string {
	if shape.Count == 0 {
		return nil
	}

	var problems []string
	if shape.Distinct != shape.Count {
		problems = append(problems, fmt.Sprintf("%d demons share a position", shape.Count-shape.Distinct))
	}
	if shape.Min != 1 {
		problems = append(problems, fmt.Sprintf("list starts at position %d, not 1", shape.Min))
	}
	if shape.Max != shape.Count {
		problems = append(problems, fmt.Sprintf("highest position is %d but the list holds %d demons", shape.Max, shape.Count))
	}
	return problems
}
