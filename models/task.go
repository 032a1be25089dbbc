package models

import "time"

// Task represents a single to-do item bound to one version of a list.
//
// A task never moves between list versions. Version transitions duplicate
// qualifying tasks into fresh records at the new version and leave the
// originals untouched as immutable history.
type Task struct {
	TaskID      string `json:"task_id"`
	UserID      string `json:"user_id"`
	ListID      string `json:"list_id"`
	TaskName    string `json:"task_name"`
	Description string `json:"description"`

	// Reminders is the ordered sequence of reminder timestamps. Reminders
	// are considered consumed at a version transition and never carry
	// forward to a duplicate.
	Reminders []time.Time `json:"reminders"`

	IsComplete  bool `json:"isComplete"`
	IsPriority  bool `json:"isPriority"`
	IsRecurring bool `json:"isRecurring"`

	// ListVersion is the list version this task instance belongs to,
	// fixed for the lifetime of the record.
	ListVersion int `json:"list_version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskCreate is the draft used to create a new task. The caller supplies
// ListVersion; completion always starts false regardless of input.
type TaskCreate struct {
	UserID      string      `json:"user_id"`
	ListID      string      `json:"list_id"`
	TaskName    string      `json:"task_name"`
	Description string      `json:"description"`
	Reminders   []time.Time `json:"reminders"`
	IsPriority  bool        `json:"isPriority"`
	IsRecurring bool        `json:"isRecurring"`
	ListVersion int         `json:"list_version"`
}

// TaskUpdate is a partial update of a task record. Nil fields are left
// untouched; only non-nil fields are written.
type TaskUpdate struct {
	TaskName    *string      `json:"task_name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Reminders   *[]time.Time `json:"reminders,omitempty"`
	IsComplete  *bool        `json:"isComplete,omitempty"`
	IsPriority  *bool        `json:"isPriority,omitempty"`
	IsRecurring *bool        `json:"isRecurring,omitempty"`
}

// HasFields reports whether at least one field of the partial is set.
func (u TaskUpdate) HasFields() bool {
	return u.TaskName != nil ||
		u.Description != nil ||
		u.Reminders != nil ||
		u.IsComplete != nil ||
		u.IsPriority != nil ||
		u.IsRecurring != nil
}
