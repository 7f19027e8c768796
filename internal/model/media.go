package model

import "time"

// MediaFile describes a single file transfer: the destination name, the declared
// or measured size and the MIME classification.
// It is built by the caller before a transfer and replaced, never mutated, once a
// remote fetch reports the real size and type.
type MediaFile struct {
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
}

// Media is a stored file together with its persisted metadata.
type Media struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	Extension   string    `json:"extension"`
	StoragePath string    `json:"storage_path"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	SourceURL   string    `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
