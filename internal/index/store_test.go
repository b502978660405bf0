package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testEntries() []Meta {
	return []Meta{
		{
			Slug:       "pumping-cost",
			Key:        "costs/pumping",
			ServiceKey: "septic-tank-pumping",
			Title:      "Pumping Cost Guide",
			Updated:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			RenderHash: "aaa",
		},
		{
			Slug:       "pumping-schedule",
			Key:        "resources/schedule",
			ServiceKey: "septic-tank-pumping",
			Title:      "How Often To Pump",
			Updated:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			RenderHash: "bbb",
		},
	}
}

func TestRebuildAndQuery(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(testEntries()))

	m, err := st.GetMeta("pumping-cost")
	require.NoError(t, err)
	require.Equal(t, "Pumping Cost Guide", m.Title)
	require.Equal(t, "aaa", m.RenderHash)

	slug, err := st.ResolveKey("resources/schedule")
	require.NoError(t, err)
	require.Equal(t, "pumping-schedule", slug)

	_, err = st.GetMeta("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByServiceNewestFirst(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(testEntries()))

	list, err := st.ListByService("septic-tank-pumping")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "pumping-schedule", list[0].Slug)
	require.Equal(t, "pumping-cost", list[1].Slug)

	none, err := st.ListByService("no-such-service")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListByServiceUndatedSortOldest(t *testing.T) {
	st := openTestStore(t)
	entries := append(testEntries(), Meta{
		Slug:       "pumping-permits",
		Key:        "resources/permits",
		ServiceKey: "septic-tank-pumping",
		Title:      "Permit Requirements",
		RenderHash: "ccc",
		// Updated 零值：没有日期的文章排在最后
	})
	require.NoError(t, st.Rebuild(entries))

	list, err := st.ListByService("septic-tank-pumping")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "pumping-permits", list[2].Slug)
}

func TestFreshMetaStale(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(testEntries()))

	m, err := st.FreshMeta("pumping-cost", "zzz")
	require.ErrorIs(t, err, ErrStale)
	require.Equal(t, "aaa", m.RenderHash) // 旧条目一起返回，调用方好决定怎么办

	_, err = st.FreshMeta("pumping-cost", "aaa")
	require.NoError(t, err)

	_, err = st.FreshMeta("missing", "aaa")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRebuildDropsRemovedEntries(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Rebuild(testEntries()))
	require.NoError(t, st.Rebuild(testEntries()[:1]))

	_, err := st.GetMeta("pumping-schedule")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := st.ListByService("septic-tank-pumping")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
