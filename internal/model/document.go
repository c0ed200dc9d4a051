package model

import "time"

// DocumentKind tells what a stored source document contains.
type DocumentKind string

const (
	KindResume         DocumentKind = "resume"
	KindJobDescription DocumentKind = "job_description"
)

// Valid reports whether k is one of the known document kinds.
func (k DocumentKind) Valid() bool {
	return k == KindResume || k == KindJobDescription
}

// Document represents an uploaded source file (a resume or a job description).
// It carries no parsing results: parsed records are computed per request and never stored.
type Document struct {
	ID          string       `json:"id"`
	Kind        DocumentKind `json:"kind"`
	Filename    string       `json:"filename"`
	StoragePath string       `json:"storage_path"`
	Size        int64        `json:"size"`
	ContentType string       `json:"content_type"`
	CreatedAt   time.Time    `json:"created_at"`
}
