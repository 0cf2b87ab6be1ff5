package models

import "time"

// Assignment strategies a check template may declare. An empty strategy means
// the schedule's legacy single asset is used.
const (
	StrategyRotate = "rotate"
	StrategyAll    = "all"
)

// CheckTemplate describes how a schedule's occurrences map to assets.
type CheckTemplate struct {
	ID             int       `json:"id"`
	OrgID          int       `json:"org_id"`
	Name           string    `json:"name"`
	AssignStrategy *string   `json:"assign_strategy"`
	CreatedAt      time.Time `json:"created_at"`
}
