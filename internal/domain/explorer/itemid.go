package explorer

import (
	"strconv"
	"strings"
)

// ItemKind discriminates the two explorer item variants.
type ItemKind int

const (
	KindFolder ItemKind = iota + 1
	KindDocument
)

const (
	folderPrefix   = "p-"
	documentPrefix = "d-"
)

func (k ItemKind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindDocument:
		return "file"
	default:
		return "unknown"
	}
}

// ItemID identifies a folder or a document. On the wire it is "p-<id>" or "d-<id>".
type ItemID struct {
	Kind ItemKind
	ID   int64
}

func FolderID(id int64) ItemID   { return ItemID{Kind: KindFolder, ID: id} }
func DocumentID(id int64) ItemID { return ItemID{Kind: KindDocument, ID: id} }

func (i ItemID) IsFolder() bool   { return i.Kind == KindFolder }
func (i ItemID) IsDocument() bool { return i.Kind == KindDocument }

func (i ItemID) String() string {
	switch i.Kind {
	case KindFolder:
		return folderPrefix + strconv.FormatInt(i.ID, 10)
	case KindDocument:
		return documentPrefix + strconv.FormatInt(i.ID, 10)
	default:
		return ""
	}
}

// ParseItemID parses a prefixed item id. Bare numbers are rejected because
// they cannot tell a folder from a document.
func ParseItemID(raw string) (ItemID, error) {
	raw = strings.TrimSpace(raw)
	var kind ItemKind
	switch {
	case strings.HasPrefix(raw, folderPrefix):
		kind = KindFolder
	case strings.HasPrefix(raw, documentPrefix):
		kind = KindDocument
	default:
		return ItemID{}, ErrInvalidItemID
	}

	id, err := parsePositive(raw[len(folderPrefix):])
	if err != nil {
		return ItemID{}, ErrInvalidItemID
	}
	return ItemID{Kind: kind, ID: id}, nil
}

// ParseFolderRef parses an optional parent folder reference. Empty means root.
// Besides "p-<id>", a bare integer is accepted for older clients.
func ParseFolderRef(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	if id, err := parsePositive(raw); err == nil {
		return &id, nil
	}

	item, err := ParseItemID(raw)
	if err != nil || !item.IsFolder() {
		return nil, ErrInvalidParentID
	}
	return &item.ID, nil
}

// parsePositive accepts only the canonical form of a positive integer: no sign
// and no leading zeros.
func parsePositive(s string) (int64, error) {
	if s == "" || s[0] < '1' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func folderRefString(parentID *int64) *string {
	if parentID == nil {
		return nil
	}
	s := FolderID(*parentID).String()
	return &s
}
