package projects

import (
	"errors"
	"fmt"

	"portfolio-backend/internal/models"
)

// AllTypes is the filter value that matches every project.
const AllTypes = "All"

var ErrIndexOutOfRange = errors.New("index out of range")

// Move removes the element at src and reinserts it at dst, then renumbers
// order_index to the 1-based position of every element. list is not modified.
func Move(list []models.Project, src, dst int) ([]models.Project, error) {
	n := len(list)
	if src < 0 || src >= n {
		return nil, fmt.Errorf("source %d: %w", src, ErrIndexOutOfRange)
	}
	if dst < 0 || dst >= n {
		return nil, fmt.Errorf("destination %d: %w", dst, ErrIndexOutOfRange)
	}

	out := make([]models.Project, 0, n)
	out = append(out, list[:src]...)
	out = append(out, list[src+1:]...)

	moved := list[src]
	out = append(out, models.Project{})
	copy(out[dst+1:], out[dst:])
	out[dst] = moved

	Renumber(out)
	return out, nil
}

// Renumber sets order_index to position + 1 in place.
func Renumber(list []models.Project) {
	for i := range list {
		list[i].OrderIndex = i + 1
	}
}

// NextOrderIndex is the order_index a new project gets: the current maximum
// (never below zero) plus one.
func NextOrderIndex(list []models.Project) int {
	highest := 0
	for _, p := range list {
		if p.OrderIndex > highest {
			highest = p.OrderIndex
		}
	}
	return highest + 1
}

// Types returns AllTypes followed by the distinct non-empty types in list order.
func Types(list []models.Project) []string {
	types := []string{AllTypes}
	seen := make(map[models.ProjectType]bool)
	for _, p := range list {
		if p.Type == "" || seen[p.Type] {
			continue
		}
		seen[p.Type] = true
		types = append(types, string(p.Type))
	}
	return types
}

// FilterByType keeps the projects of type t. AllTypes or "" keeps everything.
func FilterByType(list []models.Project, t string) []models.Project {
	if t == "" || t == AllTypes {
		return list
	}
	out := make([]models.Project, 0, len(list))
	for _, p := range list {
		if string(p.Type) == t {
			out = append(out, p)
		}
	}
	return out
}
