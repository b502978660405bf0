package index

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store 是构建产物的派生索引：每次全量构建推倒重建，
// 属于缓存而不是数据源。源文档变了而索引没重建时，
// 查询端拿到的是 ErrStale，显式失败而不是悄悄给旧数据。
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. ".sitegen/index.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("index: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
