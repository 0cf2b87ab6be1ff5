package models

import "time"

// Frequency values accepted on a schedule. Each maps to a fixed calendar step
// applied repeatedly from the start date.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnual    = "annual"
)

// ValidFrequency reports whether f is one of the supported frequency values.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// Schedule is a recurring-inspection definition. AssetIDs is the ordered
// rotation pool; LegacyAssetID carries schedules created before multi-asset
// support. RotationCursor records how far round-robin assignment has
// progressed and stays in [0, len(AssetIDs)) while the pool is non-empty.
type Schedule struct {
	ID             int       `json:"id"`
	OrgID          int       `json:"org_id"`
	SiteID         int       `json:"site_id"`
	TemplateID     *int      `json:"template_id"`
	AssetIDs       []int     `json:"asset_ids"`
	LegacyAssetID  *int      `json:"legacy_asset_id"`
	Frequency      string    `json:"frequency"`
	StartDate      time.Time `json:"start_date"`
	Active         bool      `json:"active"`
	RotationCursor int       `json:"rotation_cursor"`
	CreatedAt      time.Time `json:"created_at"`
}
