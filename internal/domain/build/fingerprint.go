package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint 决定一篇文章的产物是否需要重建：
// 源文档内容或 CTA 配置任何一个变了，RenderHash 就变。
type Fingerprint struct {
	ContentHash string
	ConfigHash  string
	RenderHash  string
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	h.Write([]byte(f.ContentHash))
	h.Write([]byte(f.ConfigHash))
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
