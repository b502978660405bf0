package index

var (
	bMeta  = []byte("meta")    // slug -> metaBytes
	bBySvc = []byte("by_svc")  // serviceKey -> sub-bucket (invUpdated+slug -> 1)
	bByKey = []byte("by_key")  // document key -> slug
)
