package model

import "time"

// Language is a storefront language that can be assigned to sales channels.
type Language struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Locale    string    `json:"locale"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesChannel is the storefront a store-api request is authenticated against.
type SalesChannel struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	AccessKey         string `json:"-"`
	DefaultLanguageID string `json:"default_language_id"`
}
