package index

import (
	"encoding/json"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Meta 是索引里每篇文章的条目。RenderHash 由源文档内容和 CTA 配置算出，
// 查询时对不上就是缓存过期。
type Meta struct {
	Slug       string    `json:"slug"`
	Key        string    `json:"key"`
	ServiceKey string    `json:"serviceKey"`
	Title      string    `json:"title"`
	Updated    time.Time `json:"updated"`
	WordCount  int       `json:"wordCount,omitempty"`
	RenderHash string    `json:"renderHash"`
}

// Rebuild 全量重建：先把旧桶整个删掉再写，索引永远和这次构建一致。
func (s *Store) Rebuild(entries []Meta) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bMeta)
		_ = tx.DeleteBucket(bBySvc)
		_ = tx.DeleteBucket(bByKey)

		metaB, _ := tx.CreateBucket(bMeta)
		bySvcB, _ := tx.CreateBucket(bBySvc)
		byKeyB, _ := tx.CreateBucket(bByKey)

		for _, m := range entries {
			if strings.TrimSpace(m.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(m.Slug), mb); err != nil {
				return err
			}

			if err := byKeyB.Put([]byte(m.Key), []byte(m.Slug)); err != nil {
				return err
			}

			if svc := strings.TrimSpace(m.ServiceKey); svc != "" {
				sb, err := bySvcB.CreateBucketIfNotExists([]byte(svc))
				if err != nil {
					return err
				}
				uKey := makeTimeSlugKey(m.Updated.UnixNano(), m.Slug)
				if err := sb.Put(uKey, []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
