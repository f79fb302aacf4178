package sync

import (
	"fmt"
	"slices"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
)

// BlockRef 定位一个块：具名块用名称，匿名块用下标。
type BlockRef struct {
	Type  string
	Name  string
	Index int
}

func (r BlockRef) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%s '%s'", r.Type, r.Name)
	}
	return fmt.Sprintf("%s[%d]", r.Type, r.Index)
}

// DiffResult 是块级别的差异。Reordered 列出块集合相同但顺序变化的 section 类型。
type DiffResult struct {
	Added     []BlockRef
	Removed   []BlockRef
	Changed   []BlockRef
	Reordered []string
}

// Empty 表示两个文档在块级别没有差异。
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 && len(d.Reordered) == 0
}

// Diff 比较两个文档。nil 文档视为空文档。
func Diff(base, target *uci.Document) *DiffResult {
	if base == nil {
		base = uci.NewDocument()
	}
	if target == nil {
		target = uci.NewDocument()
	}
	result := &DiffResult{}

	for _, typ := range base.Types() {
		if _, ok := target.Section(typ); ok {
			continue
		}
		from, _ := base.Section(typ)
		result.Removed = append(result.Removed, refs(from)...)
	}
	for _, to := range target.Sections() {
		from, ok := base.Section(to.Type)
		if !ok {
			result.Added = append(result.Added, refs(to)...)
			continue
		}
		if from.Kind != to.Kind {
			result.Removed = append(result.Removed, refs(from)...)
			result.Added = append(result.Added, refs(to)...)
			continue
		}
		if to.Kind == uci.KindNamed {
			diffNamed(result, from, to)
		} else {
			diffAnonymous(result, from, to)
		}
	}
	return result
}

func diffNamed(result *DiffResult, from, to *uci.Section) {
	var common []string
	for _, name := range from.Names() {
		if _, ok := to.Lookup(name); !ok {
			result.Removed = append(result.Removed, BlockRef{Type: from.Type, Name: name})
			continue
		}
		common = append(common, name)
	}
	var targetOrder []string
	for _, name := range to.Names() {
		block, _ := to.Lookup(name)
		old, ok := from.Lookup(name)
		if !ok {
			result.Added = append(result.Added, BlockRef{Type: to.Type, Name: name})
			continue
		}
		targetOrder = append(targetOrder, name)
		if !old.Equal(block) {
			result.Changed = append(result.Changed, BlockRef{Type: to.Type, Name: name})
		}
	}
	if !slices.Equal(common, targetOrder) {
		result.Reordered = append(result.Reordered, to.Type)
	}
}

func diffAnonymous(result *DiffResult, from, to *uci.Section) {
	before, after := from.Blocks(), to.Blocks()
	if len(before) == len(after) && !slices.EqualFunc(before, after, (*uci.Block).Equal) && samePermutation(before, after) {
		result.Reordered = append(result.Reordered, to.Type)
		return
	}
	for i := range max(len(before), len(after)) {
		ref := BlockRef{Type: to.Type, Index: i}
		switch {
		case i >= len(after):
			result.Removed = append(result.Removed, ref)
		case i >= len(before):
			result.Added = append(result.Added, ref)
		case !before[i].Equal(after[i]):
			result.Changed = append(result.Changed, ref)
		}
	}
}

// samePermutation 判断两个块序列是否互为重排。
func samePermutation(a, b []*uci.Block) bool {
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && x.Equal(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func refs(s *uci.Section) []BlockRef {
	var out []BlockRef
	if s.Kind == uci.KindNamed {
		for _, name := range s.Names() {
			out = append(out, BlockRef{Type: s.Type, Name: name})
		}
		return out
	}
	for i := range s.Len() {
		out = append(out, BlockRef{Type: s.Type, Index: i})
	}
	return out
}
