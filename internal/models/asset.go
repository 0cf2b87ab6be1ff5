package models

import "time"

type Asset struct {
	ID          int       `json:"id"`
	OrgID       int       `json:"org_id"`
	SiteID      int       `json:"site_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Site struct {
	ID        int       `json:"id"`
	OrgID     int       `json:"org_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
