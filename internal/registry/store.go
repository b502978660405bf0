package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lubosik/miamisepticpros/internal/domain/content"
)

const (
	ServicesFile  = "services.json"
	ResourcesFile = "resources.json"
	MappingFile   = "service-to-articles.json"
)

// Store 是注册表的进程内快照：Open 的时候一次性读三份 JSON，
// 之后全部只读。注册表更新走带外重新生成文件，这里没有任何写接口。
type Store struct {
	services  []content.ServiceRecord
	resources []content.ResourceRecord
	mapping   content.ServiceToArticlesMap

	byKey    map[string]int
	bySlug   map[string]int // resource slug -> resources 下标
	byID     map[string]int
	loadErrs map[string]error
}

// Open 加载 dir 下的三个注册表文件。每份各自独立加载：
// 一份坏了只记在 loadErrs 里，其余照常可查。要不要当硬错误由 Validator 说了算。
func Open(dir string) *Store {
	st := &Store{
		mapping:  content.ServiceToArticlesMap{},
		byKey:    map[string]int{},
		bySlug:   map[string]int{},
		byID:     map[string]int{},
		loadErrs: map[string]error{},
	}

	if err := readJSON(filepath.Join(dir, ServicesFile), &st.services); err != nil {
		st.loadErrs[ServicesFile] = err
	}
	if err := readJSON(filepath.Join(dir, ResourcesFile), &st.resources); err != nil {
		st.loadErrs[ResourcesFile] = err
	}
	if err := readJSON(filepath.Join(dir, MappingFile), &st.mapping); err != nil {
		st.loadErrs[MappingFile] = err
	}

	for i := range st.services {
		st.services[i].Normalize()
		st.byKey[st.services[i].Key] = i
	}
	for i := range st.resources {
		st.resources[i].Normalize()
		st.byID[st.resources[i].ID] = i
		st.bySlug[st.resources[i].Slug] = i
	}

	return st
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) ListServices(activeOnly bool) []content.ServiceRecord {
	out := make([]content.ServiceRecord, 0, len(s.services))
	for _, svc := range s.services {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	return out
}

func (s *Store) GetService(key string) (content.ServiceRecord, bool) {
	if i, ok := s.byKey[key]; ok {
		return s.services[i], true
	}
	return content.ServiceRecord{}, false
}

func (s *Store) ListResources() []content.ResourceRecord {
	out := make([]content.ResourceRecord, len(s.resources))
	copy(out, s.resources)
	return out
}

func (s *Store) GetResource(id string) (content.ResourceRecord, bool) {
	if i, ok := s.byID[id]; ok {
		return s.resources[i], true
	}
	return content.ResourceRecord{}, false
}

func (s *Store) GetResourceBySlug(slug string) (content.ResourceRecord, bool) {
	if i, ok := s.bySlug[slug]; ok {
		return s.resources[i], true
	}
	return content.ResourceRecord{}, false
}

// ResourcesForService 按派生索引给出的顺序返回，索引里引用了不存在的
// id 就跳过（那是 Validator 的硬错误，不是查询的事）
func (s *Store) ResourcesForService(key string) []content.ResourceRecord {
	ids := s.mapping[key]
	out := make([]content.ResourceRecord, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.GetResource(id); ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Mapping() content.ServiceToArticlesMap {
	out := make(content.ServiceToArticlesMap, len(s.mapping))
	for k, ids := range s.mapping {
		cp := make([]string, len(ids))
		copy(cp, ids)
		out[k] = cp
	}
	return out
}

func (s *Store) ServicesByCategory() map[content.ServiceCategory][]content.ServiceRecord {
	out := map[content.ServiceCategory][]content.ServiceRecord{}
	for _, svc := range s.ListServices(true) {
		out[svc.Category] = append(out[svc.Category], svc)
	}
	return out
}

// Err 返回某份注册表文件的加载错误，nil 表示加载正常
func (s *Store) Err(file string) error {
	return s.loadErrs[file]
}

func (s *Store) LoadErrors() map[string]error {
	out := make(map[string]error, len(s.loadErrs))
	for k, v := range s.loadErrs {
		out[k] = v
	}
	return out
}
