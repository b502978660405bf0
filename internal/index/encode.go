package index

import "bytes"

// key = invTime(8) + 0x00 + slug：游标正序遍历就是 updated 倒序
func makeTimeSlugKey(unixNano int64, slug string) []byte {
	// 零值 time.Time 的 UnixNano 是负数，直接取反会排到最前。
	// 没有日期的条目按最旧处理，夹到 0。
	if unixNano < 0 {
		unixNano = 0
	}
	invTime := ^uint64(unixNano)

	buf := make([]byte, 0, 8+1+len(slug))
	tmp := make([]byte, 8)
	putU64(tmp, invTime)
	buf = append(buf, tmp...)
	buf = append(buf, 0x00)
	buf = append(buf, []byte(slug)...)
	return buf
}

func slugFromTimeSlugKey(k []byte) string {
	// invTime(8) + 0x00 + slug
	if len(k) < 8+2 {
		return ""
	}
	i := bytes.IndexByte(k[8:], 0x00)
	if i != 0 {
		return ""
	}
	return string(k[9:])
}

func putU64(dst []byte, v uint64) {
	dst[0] = byte(v >> 56)
	dst[1] = byte(v >> 48)
	dst[2] = byte(v >> 40)
	dst[3] = byte(v >> 32)
	dst[4] = byte(v >> 24)
	dst[5] = byte(v >> 16)
	dst[6] = byte(v >> 8)
	dst[7] = byte(v)
}
