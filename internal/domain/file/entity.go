package file

import (
	"io"
	"time"
)

// Type is the coarse category used to pick an icon or preview.
type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
	TypeAudio Type = "audio"
	TypePDF   Type = "pdf"
	TypeText  Type = "text"
	TypeOther Type = "other"
)

// Info is raw filesystem metadata for one regular file in the managed directory
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Entry represents a listed file
type Entry struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	Size      string    `json:"size"`
	Modified  time.Time `json:"modified"`
	Type      Type      `json:"type"`
}

// NewEntry derives the listing view of a file.
func NewEntry(info Info) Entry {
	return Entry{
		Name:      info.Name,
		SizeBytes: info.Size,
		Size:      FormatSize(info.Size),
		Modified:  info.ModTime,
		Type:      Classify(info.Name),
	}
}

// UploadItem is one file of a batch upload
type UploadItem struct {
	Name         string
	Content      io.Reader
	DeclaredSize int64
}

// RejectReason explains why an upload item was skipped
type RejectReason string

const (
	RejectTooLarge            RejectReason = "too_large"
	RejectDisallowedExtension RejectReason = "disallowed_extension"
	RejectInvalidName         RejectReason = "invalid_name"
	RejectIOError             RejectReason = "io_error"
)

// Rejection records one skipped upload item
type Rejection struct {
	Name   string       `json:"name"`
	Reason RejectReason `json:"reason"`
}

// UploadResult summarizes a batch upload
type UploadResult struct {
	Accepted []string    `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
}

// BulkStatus is the outcome for a single name in a bulk delete
type BulkStatus string

const (
	StatusDeleted  BulkStatus = "deleted"
	StatusNotFound BulkStatus = "not_found"
	StatusInvalid  BulkStatus = "invalid"
	StatusFailed   BulkStatus = "failed"
)

// BulkDeleteResult summarizes a bulk delete
type BulkDeleteResult struct {
	Deleted int                   `json:"deleted"`
	Results map[string]BulkStatus `json:"results"`
}

// Usage is the byte count of the managed directory
type Usage struct {
	TotalBytes   int64 `json:"totalBytes"`
	VisibleBytes int64 `json:"visibleBytes"`
}

// BulkRequest carries the names of a bulk delete or download
type BulkRequest struct {
	Files []string `json:"files" form:"files[]"`
}
