package projects

import (
	"fmt"

	"portfolio-backend/internal/config"
)

// ReorderPolicy decides what happens when one of the order writes fails.
type ReorderPolicy string

const (
	// BestEffort keeps writing the remaining positions and reports every failure.
	BestEffort ReorderPolicy = config.ReorderBestEffort
	// AllOrNothing stops at the first failure and restores the previous
	// order_index of the rows already written.
	AllOrNothing ReorderPolicy = config.ReorderAllOrNothing
)

func ParsePolicy(s string) (ReorderPolicy, error) {
	switch p := ReorderPolicy(s); p {
	case BestEffort, AllOrNothing:
		return p, nil
	case "":
		return BestEffort, nil
	default:
		return "", fmt.Errorf("unknown reorder policy %q", s)
	}
}
