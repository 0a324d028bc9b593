package model

import "time"

// Location is a node in the storage hierarchy (a room, shelf, box...).
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ParentID    *int64    `json:"parentId"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PathSeparator joins location names in a materialized path.
const PathSeparator = "/"
