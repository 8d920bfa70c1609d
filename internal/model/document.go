package model

import "time"

// Document represents a file stored for an organization.
type Document struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UploadedBy     string    `json:"uploaded_by"`
	Filename       string    `json:"filename"`
	OriginalName   string    `json:"original_name"`
	StoragePath    string    `json:"storage_path"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type"`
	CreatedAt      time.Time `json:"created_at"`
}
