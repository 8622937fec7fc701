package explorer

import "atrium/internal/domain"

// CanSee reports whether a viewer role may see an item owned by ownerRole.
// Admins see everything, HR sees HR and safety items, safety sees only its
// own. Unknown viewer roles see nothing.
func CanSee(ownerRole, viewerRole domain.Role) bool {
	switch viewerRole {
	case domain.RoleAdmin:
		return true
	case domain.RoleHR:
		return ownerRole == domain.RoleHR || ownerRole == domain.RoleSafety
	case domain.RoleSafety:
		return ownerRole == domain.RoleSafety
	default:
		return false
	}
}

// visibleFolders resolves which folders a viewer may see. A folder is visible
// when its own owner role passes CanSee and its parent (if any) is visible.
func visibleFolders(folders []domain.Folder, viewer domain.Role) map[int64]bool {
	byID := make(map[int64]*domain.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	memo := make(map[int64]bool, len(folders))
	var resolve func(id int64, depth int) bool
	resolve = func(id int64, depth int) bool {
		if v, ok := memo[id]; ok {
			return v
		}
		f, ok := byID[id]
		if !ok || depth > len(folders) {
			return false
		}
		v := CanSee(f.OwnerRole, viewer)
		if v && !f.IsRoot() {
			v = resolve(*f.ParentID, depth+1)
		}
		memo[id] = v
		return v
	}

	for _, f := range folders {
		resolve(f.ID, 0)
	}
	return memo
}

// canSeeDocument applies CanSee to a file and requires its folder, if any, to
// be in the visible set.
func canSeeDocument(d *domain.Document, viewer domain.Role, visible map[int64]bool) bool {
	if !CanSee(d.OwnerRole, viewer) {
		return false
	}
	return d.ParentID == nil || visible[*d.ParentID]
}

func folderIn(folders []domain.Folder, id int64) *domain.Folder {
	for i := range folders {
		if folders[i].ID == id {
			f := folders[i]
			return &f
		}
	}
	return nil
}
