package entities

import (
	"time"
)

// FileType is the kind of entry a File record describes.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// RootParentID marks a file attached directly under a user's root.
const RootParentID = "0"

// ValidType reports whether t is one of the accepted file types.
func ValidType(t FileType) bool {
	switch t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	}
	return false
}

// File represents a stored file or folder in the system.
//
// ParentID is RootParentID or the ID of another File of type folder.
// LocalPath is the blob handle for the raw content; folders never carry one.
// Visibility is the only field mutated after creation.
type File struct {
	ID        string
	UserID    string
	Name      string
	Type      FileType
	IsPublic  bool
	ParentID  string
	LocalPath string
	CreatedAt time.Time
}

// FileProjection is the client-facing subset of a File record. The blob
// handle is deliberately not part of it.
type FileProjection struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// Projection returns the client-facing view of the record.
func (f *File) Projection() FileProjection {
	return FileProjection{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     string(f.Type),
		IsPublic: f.IsPublic,
		ParentID: f.ParentID,
	}
}
