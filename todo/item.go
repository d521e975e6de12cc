package todo

import (
	"fmt"
	"time"
)

// Status enumerates the lifecycle states of an Item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DueDateLayout is the only accepted due date representation.
const DueDateLayout = "2006-01-02"

// Item is a single task record. The ID is assigned at creation time and
// never changes afterwards.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      Status `json:"status"`
}

// Validate checks the invariants an Item must satisfy before it is
// accepted into the repository.
func (i Item) Validate() error {
	if i.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if i.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, i.DueDate); err != nil {
			return &ValidationError{Field: "due_date", Message: fmt.Sprintf("must be in %s form", DueDateLayout)}
		}
	}
	return nil
}

// Fields carries a partial update. Nil pointers mean "leave the stored
// value alone"; there is no way to blank a field through Fields, matching
// the update semantics of the service.
type Fields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Empty reports whether the update carries no recognized fields at all.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.DueDate == nil && f.Status == nil
}

// Apply overwrites the item's attributes with every non-nil field.
func (f Fields) Apply(item *Item) {
	if f.Title != nil {
		item.Title = *f.Title
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.DueDate != nil {
		item.DueDate = *f.DueDate
	}
	if f.Status != nil {
		item.Status = Status(*f.Status)
	}
}

// String is a convenience for building Fields from literals.
func String(s string) *string { return &s }
