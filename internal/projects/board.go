package projects

import (
	"errors"
	"sync"

	"portfolio-backend/internal/models"
)

var ErrNotFound = errors.New("project not found")

// Board is the local working set of projects shown to the admin. Every
// change bumps its version, so a late reload or rollback can tell that it
// is stale and skip itself instead of overwriting newer local state.
type Board struct {
	mu       sync.Mutex
	projects []models.Project
	version  uint64
}

func NewBoard() *Board {
	return &Board{projects: []models.Project{}}
}

// Snapshot returns a copy of the working set and its version.
func (b *Board) Snapshot() ([]models.Project, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copyLocked(), b.version
}

func (b *Board) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.projects)
}

// Load replaces the working set with list if the board is still at version
// since. It reports whether the list was applied.
func (b *Board) Load(list []models.Project, since uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.version != since {
		return false
	}
	b.projects = append([]models.Project{}, list...)
	b.version++
	return true
}

// Reset empties the board.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects = []models.Project{}
	b.version++
}

func (b *Board) Append(p models.Project) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects = append(b.projects, p)
	b.version++
}

func (b *Board) Find(id models.ProjectID) (models.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexLocked(id); i >= 0 {
		return b.projects[i], true
	}
	return models.Project{}, false
}

// Merge writes in over project id in place.
func (b *Board) Merge(id models.ProjectID, in ProjectInput) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return false
	}
	b.projects[i] = in.Apply(b.projects[i])
	b.version++
	return true
}

// Remove drops exactly the project with id.
func (b *Board) Remove(id models.ProjectID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return false
	}
	b.projects = append(b.projects[:i:i], b.projects[i+1:]...)
	b.version++
	return true
}

// Move applies a single-element move immediately and returns the previous
// and new orders together with the version that identifies the new order.
func (b *Board) Move(src, dst int) (before, after []models.Project, version uint64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	after, err = Move(b.projects, src, dst)
	if err != nil {
		return nil, nil, b.version, err
	}
	before = b.copyLocked()
	b.projects = after
	b.version++
	return before, append([]models.Project{}, after...), b.version, nil
}

// Restore puts prev back if nothing changed the board since version.
func (b *Board) Restore(prev []models.Project, version uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.version != version {
		return false
	}
	b.projects = append([]models.Project{}, prev...)
	b.version++
	return true
}

func (b *Board) NextOrderIndex() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return NextOrderIndex(b.projects)
}

func (b *Board) copyLocked() []models.Project {
	return append([]models.Project{}, b.projects...)
}

func (b *Board) indexLocked(id models.ProjectID) int {
	for i, p := range b.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
