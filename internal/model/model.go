// Package model contains the domain models shared by the HTTP, service and
// persistence layers. Models carry JSON tags only; no database-specific tags.
package model

// Page is a generic page of items with the total row count for the filter.
type Page[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}
