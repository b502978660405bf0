package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

// ErrStale：拿到的 RenderHash 和索引里记的对不上，
// 说明源文档改了但索引没重建。调用方要么触发重建，要么明确失败。
var ErrStale = errors.New("index entry is stale")

func (s *Store) GetMeta(slug string) (Meta, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Meta{}, ErrNotFound
	}
	var m Meta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

// FreshMeta 带着当前算出来的 renderHash 查：条目在但 hash 不一致时
// 返回 ErrStale 和旧条目，调用方自己决定是重建还是报错。
func (s *Store) FreshMeta(slug, renderHash string) (Meta, error) {
	m, err := s.GetMeta(slug)
	if err != nil {
		return Meta{}, err
	}
	if m.RenderHash != renderHash {
		return m, ErrStale
	}
	return m, nil
}

// ResolveKey 文档 key -> slug
func (s *Store) ResolveKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrNotFound
	}
	var slug string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bByKey)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		slug = string(v)
		return nil
	})
	return slug, err
}

// ListByService 按 updated 倒序返回某个服务下的全部文章条目
func (s *Store) ListByService(serviceKey string) ([]Meta, error) {
	serviceKey = strings.TrimSpace(serviceKey)
	if serviceKey == "" {
		return nil, nil
	}

	var out []Meta
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bBySvc)
		metaB := tx.Bucket(bMeta)
		if parent == nil || metaB == nil {
			return nil
		}
		sb := parent.Bucket([]byte(serviceKey))
		if sb == nil {
			return nil
		}

		cur := sb.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromTimeSlugKey(k)
			if slug == "" {
				continue
			}
			v := metaB.Get([]byte(slug))
			if v == nil {
				continue
			}
			var m Meta
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	return out, err
}
