package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain"
)

func ptr(v int64) *int64 { return &v }

func TestCollectSubtree(t *testing.T) {
	folders := []domain.Folder{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
		{ID: 4, ParentID: ptr(2)},
		{ID: 5, ParentID: ptr(4)},
		{ID: 6},
		{ID: 7, ParentID: ptr(6)},
	}

	assert.Equal(t, []int64{2, 3, 4, 5}, SortedIDs(CollectSubtree(folders, 2)))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, SortedIDs(CollectSubtree(folders, 1)))
	assert.Equal(t, []int64{5}, SortedIDs(CollectSubtree(folders, 5)))
	assert.Equal(t, []int64{42}, SortedIDs(CollectSubtree(folders, 42)), "unknown target yields itself only")
}

func TestCollectSubtreeTerminatesOnCycles(t *testing.T) {
	folders := []domain.Folder{
		{ID: 1, ParentID: ptr(3)},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
	}
	assert.Equal(t, []int64{1, 2, 3}, SortedIDs(CollectSubtree(folders, 2)))
}

func TestParseItemID(t *testing.T) {
	id, err := ParseItemID("p-12")
	require.NoError(t, err)
	assert.Equal(t, FolderID(12), id)
	assert.True(t, id.IsFolder())

	id, err = ParseItemID(" d-7 ")
	require.NoError(t, err)
	assert.Equal(t, DocumentID(7), id)
	assert.Equal(t, "d-7", id.String())

	for _, raw := range []string{"", "12", "x-1", "p-", "p-0", "d--3", "p-1a", "P-1", "p-+5", "p-007", "d-01", "p- 4"} {
		_, err := ParseItemID(raw)
		assert.ErrorIs(t, err, ErrInvalidItemID, raw)
	}
}

func TestParseFolderRef(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		got, err := ParseFolderRef(raw)
		require.NoError(t, err)
		assert.Nil(t, got, raw)
	}

	got, err := ParseFolderRef("p-9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), *got)

	got, err = ParseFolderRef("9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), *got)

	for _, raw := range []string{"d-9", "0", "-1", "abc", "+5", "007", "p-09"} {
		_, err := ParseFolderRef(raw)
		assert.ErrorIs(t, err, ErrInvalidParentID, raw)
	}
}

func TestCanSee(t *testing.T) {
	cases := []struct {
		owner, viewer domain.Role
		want          bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleHR, domain.RoleAdmin, true},
		{domain.RoleSafety, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleHR, false},
		{domain.RoleHR, domain.RoleHR, true},
		{domain.RoleSafety, domain.RoleHR, true},
		{domain.RoleAdmin, domain.RoleSafety, false},
		{domain.RoleHR, domain.RoleSafety, false},
		{domain.RoleSafety, domain.RoleSafety, true},
		{domain.RoleSafety, 0, false},
		{domain.RoleSafety, 4, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanSee(tc.owner, tc.viewer), "owner=%d viewer=%d", tc.owner, tc.viewer)
	}
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="Ficha_de_EPI.pdf"; filename*=UTF-8''Ficha_de_EPI.pdf`,
		ContentDisposition("Ficha_de_EPI.pdf"))
	assert.Equal(t,
		`attachment; filename="Admiss_o.pdf"; filename*=UTF-8''Admiss%C3%A3o.pdf`,
		ContentDisposition("Admissão.pdf"))
}
