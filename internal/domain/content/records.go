package content

import (
	"strings"
	"time"
)

type ServiceCategory string

const (
	CategorySystemService      ServiceCategory = "Septic system service"
	CategorySystemContractor   ServiceCategory = "Septic system contractor"
	CategoryDrainageContractor ServiceCategory = "Drainage contractor"
	CategorySewageTreatment    ServiceCategory = "Sewage treatment service"
)

func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategorySystemService, CategorySystemContractor,
		CategoryDrainageContractor, CategorySewageTreatment:
		return true
	}
	return false
}

// ServiceRecord 对应 data/registry/services.json 里的一条可售卖服务。
// 进程启动时一次性加载，之后只读。
type ServiceRecord struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Category ServiceCategory `json:"category"`
	Summary  string          `json:"summary"`
	Hero     string          `json:"hero,omitempty"`
	Updated  string          `json:"updated,omitempty"`
	Active   bool            `json:"active"`
}

func (s *ServiceRecord) Normalize() {
	s.Key = strings.TrimSpace(s.Key)
	s.Name = strings.TrimSpace(s.Name)
	s.Slug = strings.TrimSpace(s.Slug)
	s.Summary = strings.TrimSpace(s.Summary)
}

func (s ServiceRecord) UpdatedTime() time.Time {
	return parseDate(s.Updated)
}

// ResourceRecord 对应 resources.json 里的一篇长文。
type ResourceRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ServiceKey string `json:"serviceKey"`
	SourcePath string `json:"sourcePath"`
	Hero       string `json:"hero,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
	WordCount  int    `json:"wordCount,omitempty"`
	Updated    string `json:"updated,omitempty"`
}

func (r *ResourceRecord) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	r.ServiceKey = strings.TrimSpace(r.ServiceKey)
	r.SourcePath = strings.TrimSpace(r.SourcePath)
}

func (r ResourceRecord) UpdatedTime() time.Time {
	return parseDate(r.Updated)
}

// ServiceToArticlesMap 是派生索引：serviceKey -> ResourceRecord.ID 列表。
// 由生成脚本重建，不在这里修改。
type ServiceToArticlesMap map[string][]string

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		time.DateTime,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
