package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lubosik/miamisepticpros/internal/domain/content"
)

func writeRegistry(t *testing.T, services, resources, mapping string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		ServicesFile:  services,
		ResourcesFile: resources,
		MappingFile:   mapping,
	} {
		if body == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

const testServices = `[
  {"key": "septic-tank-pumping", "name": "Septic Tank Pumping", "slug": "septic-tank-pumping",
   "category": "Septic system service", "summary": "Scheduled pump-outs.", "updated": "2025-06-01", "active": true},
  {"key": "lift-station-repair", "name": "Lift Station Repair", "slug": "lift-station-repair",
   "category": "Septic system contractor", "summary": "Pump and float repair.", "active": false}
]`

const testResources = `[
  {"id": "r-cost", "title": "Pumping Cost Guide", "slug": "pumping-cost",
   "serviceKey": "septic-tank-pumping", "sourcePath": "costs/pumping.md", "updated": "2025-03-09"},
  {"id": "r-schedule", "title": "How Often To Pump", "slug": "pumping-schedule",
   "serviceKey": "septic-tank-pumping", "sourcePath": "resources/schedule.md", "updated": "2024-05-01"}
]`

const testMapping = `{"septic-tank-pumping": ["r-schedule", "r-cost"]}`

func TestStoreLookups(t *testing.T) {
	st := Open(writeRegistry(t, testServices, testResources, testMapping))
	require.Empty(t, st.LoadErrors())

	require.Len(t, st.ListServices(false), 2)
	require.Len(t, st.ListServices(true), 1)

	svc, ok := st.GetService("septic-tank-pumping")
	require.True(t, ok)
	require.Equal(t, content.CategorySystemService, svc.Category)
	require.False(t, svc.UpdatedTime().IsZero())

	r, ok := st.GetResourceBySlug("pumping-cost")
	require.True(t, ok)
	require.Equal(t, "r-cost", r.ID)

	_, ok = st.GetResource("nope")
	require.False(t, ok)
}

func TestResourcesForServiceKeepsMappingOrder(t *testing.T) {
	st := Open(writeRegistry(t, testServices, testResources, testMapping))

	rs := st.ResourcesForService("septic-tank-pumping")
	require.Len(t, rs, 2)
	require.Equal(t, "r-schedule", rs[0].ID)
	require.Equal(t, "r-cost", rs[1].ID)

	require.Empty(t, st.ResourcesForService("lift-station-repair"))
}

func TestServicesByCategory(t *testing.T) {
	st := Open(writeRegistry(t, testServices, testResources, testMapping))

	byCat := st.ServicesByCategory()
	require.Len(t, byCat[content.CategorySystemService], 1)
	// inactive 服务不进分类视图
	require.Empty(t, byCat[content.CategorySystemContractor])
}

func TestStoreDegradedLoad(t *testing.T) {
	dir := writeRegistry(t, "{not json", testResources, "")

	st := Open(dir)
	require.Error(t, st.Err(ServicesFile))
	require.Error(t, st.Err(MappingFile)) // 文件缺失也是加载错误
	require.NoError(t, st.Err(ResourcesFile))

	// 坏的那份不影响其余集合的查询
	require.Len(t, st.ListResources(), 2)
	require.Empty(t, st.ListServices(false))
}
