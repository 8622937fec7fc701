package explorer

import (
	"slices"

	"atrium/internal/domain"
)

// CollectSubtree returns target plus every folder reachable from it through
// parent links. The walk is breadth-first and never revisits a folder, so a
// corrupted cycle in the data terminates.
func CollectSubtree(folders []domain.Folder, target int64) map[int64]struct{} {
	children := make(map[int64][]int64, len(folders))
	for _, f := range folders {
		var parent int64 // 0 is the root bucket
		if f.ParentID != nil {
			parent = *f.ParentID
		}
		children[parent] = append(children[parent], f.ID)
	}

	seen := map[int64]struct{}{target: {}}
	queue := []int64{target}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return seen
}

// SortedIDs flattens a subtree set into ascending ids.
func SortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
