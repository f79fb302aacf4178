package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
)

// VersionedDocument 记录文档及其渲染结果的版本元数据。
type VersionedDocument struct {
	VersionID string
	Checksum  string
	Timestamp time.Time
	Document  *uci.Document
}

// Snapshot 以渲染后的文本计算校验和，生成版本记录。
func Snapshot(doc *uci.Document, rendered []byte) *VersionedDocument {
	sum := sha256.Sum256(rendered)
	checksum := hex.EncodeToString(sum[:])
	return &VersionedDocument{
		VersionID: checksum[:12],
		Checksum:  checksum,
		Timestamp: time.Now(),
		Document:  doc,
	}
}

// ChangeSet 描述两个版本之间的一次差异。
type ChangeSet struct {
	Base   *VersionedDocument
	Target *VersionedDocument
	Diff   *DiffResult
}

// NewChangeSet 计算 base 到 target 的差异。
func NewChangeSet(base, target *VersionedDocument) *ChangeSet {
	cs := &ChangeSet{Base: base, Target: target}
	var from, to *uci.Document
	if base != nil {
		from = base.Document
	}
	if target != nil {
		to = target.Document
	}
	cs.Diff = Diff(from, to)
	return cs
}

// Identical 表示两个版本渲染结果逐字节一致。
func (c *ChangeSet) Identical() bool {
	return c.Base != nil && c.Target != nil && c.Base.Checksum == c.Target.Checksum
}
