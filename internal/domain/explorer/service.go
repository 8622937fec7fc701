package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atrium/internal/domain"
	"atrium/internal/domain/events"
	"atrium/internal/pkg/filetype"
	"atrium/internal/storage"
)

const maxNameLength = 255

// EmployeeChecker confirms that an employee exists and is active.
type EmployeeChecker interface {
	RequireActive(ctx context.Context, id int64) error
}

// Service implements the per-employee document explorer.
type Service struct {
	repo        Repository
	store       storage.Storage
	employees   EmployeeChecker
	events      events.Publisher
	logger      *slog.Logger
	maxFileSize int64
	now         func() time.Time
}

func NewService(
	repo Repository,
	store storage.Storage,
	employees EmployeeChecker,
	publisher events.Publisher,
	logger *slog.Logger,
	maxFileSize int64,
) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:        repo,
		store:       store,
		employees:   employees,
		events:      publisher,
		logger:      logger,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// ListAll returns the visible active folders (by name) followed by the visible
// active files (by name). A folder's size and modification time aggregate its
// direct files only.
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, employeeID int64) ([]Item, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return nil, err
	}

	folders, err := s.repo.ListFolders(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	docs, err := s.repo.ListDocuments(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	visible := visibleFolders(folders, actor.Role)

	var files []Item
	sizeOf := make(map[int64]int64)
	latest := make(map[int64]time.Time)
	for i := range docs {
		d := &docs[i]
		if !canSeeDocument(d, actor.Role, visible) {
			continue
		}
		if d.ParentID != nil {
			sizeOf[*d.ParentID] += d.Size
			if d.UpdatedAt.After(latest[*d.ParentID]) {
				latest[*d.ParentID] = d.UpdatedAt
			}
		}
		files = append(files, documentItem(d))
	}

	items := make([]Item, 0, len(folders)+len(files))
	for i := range folders {
		f := &folders[i]
		if !visible[f.ID] {
			continue
		}
		modified := f.UpdatedAt
		if latest[f.ID].After(modified) {
			modified = latest[f.ID]
		}
		items = append(items, folderItem(f, sizeOf[f.ID], modified))
	}
	sortByName(items)
	sortByName(files)

	return append(items, files...), nil
}

func (s *Service) CreateFolder(ctx context.Context, actor domain.Actor, employeeID int64, in CreateFolderInput) (Item, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return Item{}, err
	}
	name, err := validateName(in.Name)
	if err != nil {
		return Item{}, err
	}
	ownerRole, err := resolveOwnerRole(in.OwnerRole, actor)
	if err != nil {
		return Item{}, err
	}
	parentID, err := s.resolveParent(ctx, s.repo, actor, employeeID, in.ParentRef)
	if err != nil {
		return Item{}, err
	}

	now := s.now()
	folder := &domain.Folder{
		EmployeeID: employeeID,
		ParentID:   parentID,
		Name:       name,
		OwnerRole:  ownerRole,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  actor.UserID,
		UpdatedBy:  actor.UserID,
	}
	if err := s.repo.CreateFolder(ctx, folder); err != nil {
		return Item{}, fmt.Errorf("create folder: %w", err)
	}

	item := folderItem(folder, 0, folder.UpdatedAt)
	s.logger.Info("folder created",
		"employee_id", employeeID,
		"id", item.ID,
		"parent_id", folder.ParentID,
		"user_id", actor.UserID,
	)
	s.publish(ctx, actor, employeeID, events.ActionFolderCreated, ownerRole, []*int64{parentID}, item.ID)
	return item, nil
}

func (s *Service) Rename(ctx context.Context, actor domain.Actor, employeeID int64, rawID, newName string) (Item, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return Item{}, err
	}
	id, err := ParseItemID(rawID)
	if err != nil {
		return Item{}, err
	}
	name, err := validateName(newName)
	if err != nil {
		return Item{}, err
	}

	now := s.now()
	var (
		item   Item
		owner  domain.Role
		parent *int64
	)
	switch id.Kind {
	case KindFolder:
		folder, err := s.visibleFolder(ctx, s.repo, actor, employeeID, id.ID)
		if err != nil {
			return Item{}, err
		}
		folder.Name = name
		folder.UpdatedAt = now
		folder.UpdatedBy = actor.UserID
		if err := s.repo.SaveFolder(ctx, folder); err != nil {
			return Item{}, fmt.Errorf("rename folder: %w", err)
		}
		item = folderItem(folder, 0, folder.UpdatedAt)
		owner, parent = folder.OwnerRole, folder.ParentID
	default:
		doc, err := s.visibleDocument(ctx, s.repo, actor, employeeID, id.ID)
		if err != nil {
			return Item{}, err
		}
		doc.Name = name
		doc.UpdatedAt = now
		doc.UpdatedBy = actor.UserID
		if err := s.repo.SaveDocument(ctx, doc); err != nil {
			return Item{}, fmt.Errorf("rename document: %w", err)
		}
		item = documentItem(doc)
		owner, parent = doc.OwnerRole, doc.ParentID
	}

	s.logger.Info("item renamed", "employee_id", employeeID, "id", item.ID, "user_id", actor.UserID)
	s.publish(ctx, actor, employeeID, events.ActionItemRenamed, owner, []*int64{parent}, item.ID)
	return item, nil
}

// UploadFiles stores every file and inserts their rows in one transaction.
// Any failure fails the whole call and removes the bytes already stored.
func (s *Service) UploadFiles(ctx context.Context, actor domain.Actor, employeeID int64, in UploadInput) ([]Item, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return nil, err
	}
	if len(in.Files) == 0 {
		return nil, ErrNoFiles
	}
	for _, f := range in.Files {
		if f.Size == 0 {
			return nil, ErrEmptyFile
		}
		if s.maxFileSize > 0 && f.Size > s.maxFileSize {
			return nil, s.tooLarge(f.Name)
		}
	}
	ownerRole, err := resolveOwnerRole(in.OwnerRole, actor)
	if err != nil {
		return nil, err
	}
	parentID, err := s.resolveParent(ctx, s.repo, actor, employeeID, in.ParentRef)
	if err != nil {
		return nil, err
	}

	var stored []string
	cleanup := func() {
		bg := context.WithoutCancel(ctx)
		for _, key := range stored {
			if err := s.store.Delete(bg, key); err != nil {
				s.logger.Warn("failed to remove stored object after upload failure", "key", key, "error", err)
			}
		}
	}

	now := s.now()
	docs := make([]*domain.Document, 0, len(in.Files))
	for _, f := range in.Files {
		obj, contentType, err := s.storeFile(ctx, f)
		if obj.Key != "" {
			stored = append(stored, obj.Key)
		}
		if err != nil {
			cleanup()
			return nil, err
		}

		docs = append(docs, &domain.Document{
			EmployeeID:   employeeID,
			ParentID:     parentID,
			Name:         displayName(f.Name),
			StorageKey:   obj.Key,
			OriginalName: f.Name,
			MimeType:     contentType,
			Size:         obj.Size,
			OwnerRole:    ownerRole,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
			CreatedBy:    actor.UserID,
			UpdatedBy:    actor.UserID,
		})
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return tx.CreateDocuments(ctx, docs)
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("insert documents: %w", err)
	}

	items := make([]Item, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		item := documentItem(d)
		items = append(items, item)
		ids = append(ids, item.ID)
	}

	s.logger.Info("files uploaded", "employee_id", employeeID, "count", len(items), "parent_id", parentID, "user_id", actor.UserID)
	s.publish(ctx, actor, employeeID, events.ActionFilesUploaded, ownerRole, []*int64{parentID}, ids...)
	return items, nil
}

func (s *Service) storeFile(ctx context.Context, f UploadFile) (storage.Object, string, error) {
	if f.Open == nil {
		return storage.Object{}, "", fmt.Errorf("file %q has no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return storage.Object{}, "", fmt.Errorf("open %q: %w", f.Name, err)
	}
	defer rc.Close()

	r, contentType, err := filetype.Sniff(rc, f.ContentType, f.Name)
	if err != nil {
		return storage.Object{}, "", fmt.Errorf("read %q: %w", f.Name, err)
	}
	if s.maxFileSize > 0 {
		r = io.LimitReader(r, s.maxFileSize+1)
	}

	obj, err := s.store.Save(ctx, f.Name, r)
	if err != nil {
		return obj, "", fmt.Errorf("store %q: %w", f.Name, err)
	}
	if obj.Size == 0 {
		return obj, "", ErrEmptyFile
	}
	if s.maxFileSize > 0 && obj.Size > s.maxFileSize {
		return obj, "", s.tooLarge(f.Name)
	}
	return obj, contentType, nil
}

// DeleteItem soft-deletes a file, or a folder together with every folder
// below it and the files directly inside any of them, atomically. A folder
// holding anything the actor cannot see is left untouched and reported as a
// conflict.
func (s *Service) DeleteItem(ctx context.Context, actor domain.Actor, employeeID int64, rawID string) (DeleteResult, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return DeleteResult{}, err
	}
	id, err := ParseItemID(rawID)
	if err != nil {
		return DeleteResult{}, err
	}

	now := s.now()
	if id.IsDocument() {
		doc, err := s.visibleDocument(ctx, s.repo, actor, employeeID, id.ID)
		if err != nil {
			return DeleteResult{}, err
		}
		doc.Active = false
		doc.UpdatedAt = now
		doc.UpdatedBy = actor.UserID
		if err := s.repo.SaveDocument(ctx, doc); err != nil {
			return DeleteResult{}, fmt.Errorf("delete document: %w", err)
		}
		s.logger.Info("document deleted", "employee_id", employeeID, "id", id.String(), "user_id", actor.UserID)
		s.publish(ctx, actor, employeeID, events.ActionItemDeleted, doc.OwnerRole, []*int64{doc.ParentID}, id.String())
		return DeleteResult{Documents: 1}, nil
	}

	var (
		result DeleteResult
		folder *domain.Folder
	)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		folders, err := tx.LockFolders(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("lock folders: %w", err)
		}
		visible := visibleFolders(folders, actor.Role)
		if folder = folderIn(folders, id.ID); folder == nil || !visible[folder.ID] {
			return ErrFolderNotFound
		}

		subtree := CollectSubtree(folders, id.ID)
		for fid := range subtree {
			if !visible[fid] {
				return ErrHiddenContent
			}
		}
		docs, err := tx.ListDocuments(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		for i := range docs {
			if docs[i].ParentID == nil {
				continue
			}
			if _, inside := subtree[*docs[i].ParentID]; inside && !CanSee(docs[i].OwnerRole, actor.Role) {
				return ErrHiddenContent
			}
		}

		ids := SortedIDs(subtree)
		if result.Folders, err = tx.DeactivateFolders(ctx, employeeID, ids, actor.UserID, now); err != nil {
			return fmt.Errorf("deactivate folders: %w", err)
		}
		if result.Documents, err = tx.DeactivateDocumentsIn(ctx, employeeID, ids, actor.UserID, now); err != nil {
			return fmt.Errorf("deactivate documents: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	s.logger.Info("folder deleted",
		"employee_id", employeeID,
		"id", id.String(),
		"folders", result.Folders,
		"documents", result.Documents,
		"user_id", actor.UserID,
	)
	s.publish(ctx, actor, employeeID, events.ActionItemDeleted, folder.OwnerRole, []*int64{folder.ParentID}, id.String())
	return result, nil
}

// Move reparents a folder or file. A folder can move neither into itself nor
// into any folder below it. The check and the write share one transaction
// holding the employee's folder rows, so concurrent moves cannot form a cycle.
func (s *Service) Move(ctx context.Context, actor domain.Actor, employeeID int64, rawSrc, targetRef string) (Item, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return Item{}, err
	}
	src, err := ParseItemID(rawSrc)
	if err != nil {
		return Item{}, err
	}
	target, err := ParseFolderRef(targetRef)
	if err != nil {
		return Item{}, err
	}

	now := s.now()
	var (
		item  Item
		owner domain.Role
		from  *int64
	)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		folders, err := tx.LockFolders(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("lock folders: %w", err)
		}
		visible := visibleFolders(folders, actor.Role)
		if target != nil && !visible[*target] {
			return ErrParentNotFound
		}

		if src.IsDocument() {
			doc, err := tx.GetDocument(ctx, employeeID, src.ID)
			if err != nil {
				return err
			}
			if !canSeeDocument(doc, actor.Role, visible) {
				return ErrDocumentNotFound
			}
			owner, from = doc.OwnerRole, doc.ParentID
			doc.ParentID = target
			doc.UpdatedAt = now
			doc.UpdatedBy = actor.UserID
			if err := tx.SaveDocument(ctx, doc); err != nil {
				return fmt.Errorf("move document: %w", err)
			}
			item = documentItem(doc)
			return nil
		}

		folder := folderIn(folders, src.ID)
		if folder == nil || !visible[folder.ID] {
			return ErrFolderNotFound
		}
		if target != nil {
			if *target == folder.ID {
				return ErrMoveIntoSelf
			}
			if _, below := CollectSubtree(folders, folder.ID)[*target]; below {
				return ErrMoveIntoDescendant
			}
		}
		owner, from = folder.OwnerRole, folder.ParentID
		folder.ParentID = target
		folder.UpdatedAt = now
		folder.UpdatedBy = actor.UserID
		if err := tx.SaveFolder(ctx, folder); err != nil {
			return fmt.Errorf("move folder: %w", err)
		}
		item = folderItem(folder, 0, folder.UpdatedAt)
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	s.logger.Info("item moved", "employee_id", employeeID, "id", item.ID, "parent_id", target, "user_id", actor.UserID)
	s.publish(ctx, actor, employeeID, events.ActionItemMoved, owner, []*int64{from, target}, item.ID)
	return item, nil
}

// OpenDownload opens the stored bytes of an active file.
func (s *Service) OpenDownload(ctx context.Context, actor domain.Actor, employeeID int64, rawID string) (*Download, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return nil, err
	}
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}
	if !id.IsDocument() {
		return nil, ErrFolderDownload
	}

	doc, err := s.visibleDocument(ctx, s.repo, actor, employeeID, id.ID)
	if err != nil {
		return nil, err
	}

	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open stored file %s: %w", doc.StorageKey, err)
	}

	name := doc.OriginalName
	if name == "" {
		name = doc.Name
	}
	return &Download{Reader: rc, ContentType: doc.MimeType, FileName: name, Size: doc.Size}, nil
}

func (s *Service) resolveParent(ctx context.Context, repo Repository, actor domain.Actor, employeeID int64, ref string) (*int64, error) {
	parentID, err := ParseFolderRef(ref)
	if err != nil || parentID == nil {
		return nil, err
	}
	if _, err := s.visibleFolder(ctx, repo, actor, employeeID, *parentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return parentID, nil
}

// visibleFolder loads an active folder the actor may see. A folder is hidden
// when it or any folder above it is outside the actor's visibility.
func (s *Service) visibleFolder(ctx context.Context, repo Repository, actor domain.Actor, employeeID, id int64) (*domain.Folder, error) {
	folders, err := repo.ListFolders(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folder := folderIn(folders, id)
	if folder == nil || !visibleFolders(folders, actor.Role)[id] {
		return nil, ErrFolderNotFound
	}
	return folder, nil
}

// visibleDocument loads an active file the actor may see, which requires its
// folder to be visible as well.
func (s *Service) visibleDocument(ctx context.Context, repo Repository, actor domain.Actor, employeeID, id int64) (*domain.Document, error) {
	doc, err := repo.GetDocument(ctx, employeeID, id)
	if err != nil {
		return nil, err
	}
	if !CanSee(doc.OwnerRole, actor.Role) {
		return nil, ErrDocumentNotFound
	}
	if doc.ParentID == nil {
		return doc, nil
	}
	folders, err := repo.ListFolders(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if !canSeeDocument(doc, actor.Role, visibleFolders(folders, actor.Role)) {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// publish announces a change to the subscribers whose role can see the item
// under any of the given parents.
func (s *Service) publish(ctx context.Context, actor domain.Actor, employeeID int64, action string, owner domain.Role, parents []*int64, ids ...string) {
	s.events.Publish(events.Event{
		EmployeeID: employeeID,
		Action:     action,
		Items:      ids,
		ActorID:    actor.UserID,
		At:         s.now(),
		Audience:   s.audience(ctx, employeeID, owner, parents),
	})
}

func (s *Service) audience(ctx context.Context, employeeID int64, owner domain.Role, parents []*int64) []domain.Role {
	folders, err := s.repo.ListFolders(ctx, employeeID)
	if err != nil {
		s.logger.Warn("failed to resolve event audience", "employee_id", employeeID, "error", err)
		return []domain.Role{domain.RoleAdmin}
	}

	var roles []domain.Role
	for _, role := range domain.Roles() {
		if !CanSee(owner, role) {
			continue
		}
		visible := visibleFolders(folders, role)
		for _, p := range parents {
			if p == nil || visible[*p] {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}

func (s *Service) tooLarge(name string) error {
	return &domain.FileTooLargeError{
		Message: fmt.Sprintf("file %q exceeds the %d MB limit", name, s.maxFileSize/(1024*1024)),
	}
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	err := validation.Validate(name,
		validation.Required.Error("name must not be blank"),
		validation.RuneLength(1, maxNameLength).Error("name is too long"),
	)
	if err != nil {
		return "", domain.Invalid("%s", err.Error())
	}
	return name, nil
}

func resolveOwnerRole(role domain.Role, actor domain.Actor) (domain.Role, error) {
	if role == 0 {
		role = domain.DefaultOwnerRole
		if !CanSee(role, actor.Role) && actor.Role.Valid() {
			role = actor.Role
		}
	}
	if !role.Valid() {
		return 0, ErrInvalidOwnerRole
	}
	if !CanSee(role, actor.Role) {
		return 0, ErrOwnerRoleHidden
	}
	return role, nil
}

func displayName(filename string) string {
	name := strings.TrimSpace(filename)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "file"
	}
	if len([]rune(name)) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}

func sortByName(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
}
