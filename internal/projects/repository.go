package projects

import (
	"context"
	"errors"
	"fmt"
	"log"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

// Table is the projects table name.
const Table = "projects"

var ErrNoRecord = errors.New("store returned no project")

type Repository struct {
	store supabase.Store
}

func NewRepository(store supabase.Store) *Repository {
	return &Repository{store: store}
}

// List returns every project ascending by order_index. Failures are logged
// and yield an empty list.
func (r *Repository) List(ctx context.Context) []models.Project {
	list, err := r.Fetch(ctx)
	if err != nil {
		log.Printf("Warning: %v", err)
		return []models.Project{}
	}
	return list
}

// Fetch is List for write paths: a failed read is returned, never turned
// into an empty list.
func (r *Repository) Fetch(ctx context.Context) ([]models.Project, error) {
	res := r.store.From(Table).Select("*").Order("order_index", true).Execute(ctx)
	projects := []models.Project{}
	if err := res.Decode(&projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// Create inserts a project at orderIndex and returns the stored record.
func (r *Repository) Create(ctx context.Context, in ProjectInput, orderIndex int) (models.Project, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}

	row := projectRow{projectFields: fieldsOf(in), OrderIndex: orderIndex}
	res := r.store.From(Table).Insert(row).Select("*").Single().Execute(ctx)
	if err := res.Err(); err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	if res.Empty() {
		return models.Project{}, ErrNoRecord
	}

	var created models.Project
	if err := res.Decode(&created); err != nil {
		return models.Project{}, fmt.Errorf("failed to decode created project: %w", err)
	}
	return created, nil
}

// Update writes title, type, description and pdf_url of project id.
func (r *Repository) Update(ctx context.Context, id models.ProjectID, in ProjectInput) error {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}

	res := r.store.From(Table).Update(fieldsOf(in)).Eq("id", id).Execute(ctx)
	if err := res.Err(); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id models.ProjectID) error {
	res := r.store.From(Table).Delete().Eq("id", id).Execute(ctx)
	if err := res.Err(); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// PersistOrder writes order_index = position + 1 for every project of after,
// one update at a time in position order. before is the order the rows had
// prior to the move; AllOrNothing uses it to undo already written rows.
func (r *Repository) PersistOrder(ctx context.Context, before, after []models.Project, policy ReorderPolicy) error {
	var errs []error
	for i, p := range after {
		if err := r.setOrderIndex(ctx, p.ID, i+1); err != nil {
			err = fmt.Errorf("failed to persist position of project %s: %w", p.ID, err)
			if policy == AllOrNothing {
				return errors.Join(err, r.rollback(ctx, after[:i], before))
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// rollback restores the previous order_index of written, newest write first.
func (r *Repository) rollback(ctx context.Context, written, before []models.Project) error {
	previous := make(map[models.ProjectID]int, len(before))
	for _, p := range before {
		previous[p.ID] = p.OrderIndex
	}

	var errs []error
	for i := len(written) - 1; i >= 0; i-- {
		id := written[i].ID
		prev, ok := previous[id]
		if !ok {
			continue
		}
		if err := r.setOrderIndex(ctx, id, prev); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore position of project %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Repository) setOrderIndex(ctx context.Context, id models.ProjectID, orderIndex int) error {
	res := r.store.From(Table).Update(map[string]int{"order_index": orderIndex}).Eq("id", id).Execute(ctx)
	return res.Err()
}
