package explorer

import (
	"io"
	"time"

	"atrium/internal/domain"
)

// Item is the flat read model shared by folders and files.
type Item struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Name         string      `json:"name"`
	ParentID     *string     `json:"parentId"`
	Size         int64       `json:"size"`
	ModifiedAt   time.Time   `json:"modifiedAt"`
	CreatedAt    time.Time   `json:"createdAt"`
	OwnerRole    domain.Role `json:"ownerRole"`
	MimeType     string      `json:"mimeType,omitempty"`
	OriginalName string      `json:"originalName,omitempty"`
}

type CreateFolderRequest struct {
	ParentID  string      `json:"parentId"`
	Name      string      `json:"name" validate:"notblank,max=255"`
	OwnerRole domain.Role `json:"ownerRole"`
}

type RenameRequest struct {
	Name string `json:"name" validate:"notblank,max=255"`
}

// CopyRequest moves srcItemId under targetParentId. The endpoint keeps its
// historical "copy" name; nothing is duplicated.
type CopyRequest struct {
	SrcItemID      string `json:"srcItemId" validate:"required"`
	TargetParentID string `json:"targetParentId"`
}

type DeleteResult struct {
	Folders   int64 `json:"folders"`
	Documents int64 `json:"documents"`
}

// UploadFile is one incoming file. Open is called once, when the file's turn
// comes, so only one stream is held at a time.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type CreateFolderInput struct {
	ParentRef string
	Name      string
	OwnerRole domain.Role
}

type UploadInput struct {
	ParentRef string
	OwnerRole domain.Role
	Files     []UploadFile
}

// Download is an open document stream; the caller closes Reader.
type Download struct {
	Reader      io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
}

func folderItem(f *domain.Folder, size int64, modified time.Time) Item {
	return Item{
		ID:         FolderID(f.ID).String(),
		Type:       KindFolder.String(),
		Name:       f.Name,
		ParentID:   folderRefString(f.ParentID),
		Size:       size,
		ModifiedAt: modified,
		CreatedAt:  f.CreatedAt,
		OwnerRole:  f.OwnerRole,
	}
}

func documentItem(d *domain.Document) Item {
	return Item{
		ID:           DocumentID(d.ID).String(),
		Type:         KindDocument.String(),
		Name:         d.Name,
		ParentID:     folderRefString(d.ParentID),
		Size:         d.Size,
		ModifiedAt:   d.UpdatedAt,
		CreatedAt:    d.CreatedAt,
		OwnerRole:    d.OwnerRole,
		MimeType:     d.MimeType,
		OriginalName: d.OriginalName,
	}
}
