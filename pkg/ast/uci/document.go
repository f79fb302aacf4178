package uci

import (
	"maps"
	"slices"
)

// Kind 标记 Section 的容器形态，由首个提交的块决定。
type Kind int

const (
	// KindNamed 表示按名称索引的块集合。
	KindNamed Kind = iota + 1
	// KindAnonymous 表示按出现顺序追加的匿名块序列。
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// KindFor 根据块名返回应使用的容器形态。
func KindFor(name string) Kind {
	if name == "" {
		return KindAnonymous
	}
	return KindNamed
}

// Document 表示单个 UCI 文件解析后的结构，按首次出现顺序保存 section 类型。
type Document struct {
	Package string

	order    []string
	sections map[string]*Section
}

// NewDocument 创建空文档。
func NewDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// Section 返回指定类型的容器。
func (d *Document) Section(typ string) (*Section, bool) {
	if d == nil || d.sections == nil {
		return nil, false
	}
	s, ok := d.sections[typ]
	return s, ok
}

// Sections 按插入顺序返回全部容器。
func (d *Document) Sections() []*Section {
	if d == nil {
		return nil
	}
	out := make([]*Section, 0, len(d.order))
	for _, typ := range d.order {
		out = append(out, d.sections[typ])
	}
	return out
}

// Types 按插入顺序返回 section 类型名。
func (d *Document) Types() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.order)
}

// Len 返回 section 类型数量。
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Ensure 返回 typ 对应的容器，不存在时以 kind 创建。
// 已存在且形态不同则返回现有容器与 false。
func (d *Document) Ensure(typ string, kind Kind) (*Section, bool) {
	if s, ok := d.Section(typ); ok {
		return s, s.Kind == kind
	}
	s := NewSection(typ, kind)
	d.Put(s)
	return s, true
}

// Put 插入或替换容器；替换时保留原有位置。
func (d *Document) Put(s *Section) {
	if s == nil {
		return
	}
	if d.sections == nil {
		d.sections = make(map[string]*Section)
	}
	if _, exists := d.sections[s.Type]; !exists {
		d.order = append(d.order, s.Type)
	}
	d.sections[s.Type] = s
}

// Clone 深拷贝整个文档。
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := NewDocument()
	out.Package = d.Package
	for _, s := range d.Sections() {
		out.Put(s.Clone())
	}
	return out
}

// Section 是同一类型下全部块的容器。
type Section struct {
	Type string
	Kind Kind

	names []string
	named map[string]*Block
	anon  []*Block
}

// NewSection 创建指定形态的空容器。
func NewSection(typ string, kind Kind) *Section {
	s := &Section{Type: typ, Kind: kind}
	if kind == KindNamed {
		s.named = make(map[string]*Block)
	}
	return s
}

// Set 写入命名块，同名后写覆盖，但保持首次出现的位置。
// 对非 KindNamed 容器调用会 panic。
func (s *Section) Set(name string, b *Block) {
	if s.Kind != KindNamed {
		panic("uci: Set on " + s.Kind.String() + " section " + s.Type)
	}
	if s.named == nil {
		s.named = make(map[string]*Block)
	}
	if _, exists := s.named[name]; !exists {
		s.names = append(s.names, name)
	}
	s.named[name] = b
}

// Append 追加匿名块。对非 KindAnonymous 容器调用会 panic。
func (s *Section) Append(b *Block) {
	if s.Kind != KindAnonymous {
		panic("uci: Append on " + s.Kind.String() + " section " + s.Type)
	}
	s.anon = append(s.anon, b)
}

// Lookup 按名称查找命名块。
func (s *Section) Lookup(name string) (*Block, bool) {
	if s == nil || s.named == nil {
		return nil, false
	}
	b, ok := s.named[name]
	return b, ok
}

// Names 按顺序返回命名块的名称。
func (s *Section) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

// Blocks 按输出顺序返回全部块。
func (s *Section) Blocks() []*Block {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case KindNamed:
		out := make([]*Block, 0, len(s.names))
		for _, name := range s.names {
			out = append(out, s.named[name])
		}
		return out
	case KindAnonymous:
		return slices.Clone(s.anon)
	default:
		return nil
	}
}

// Len 返回块数量。
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	if s.Kind == KindNamed {
		return len(s.names)
	}
	return len(s.anon)
}

// SortStableFunc 按 cmp 对块稳定排序，两种形态都适用。
func (s *Section) SortStableFunc(cmp func(a, b *Block) int) {
	switch s.Kind {
	case KindNamed:
		slices.SortStableFunc(s.names, func(a, b string) int {
			return cmp(s.named[a], s.named[b])
		})
	case KindAnonymous:
		slices.SortStableFunc(s.anon, cmp)
	}
}

// Clone 深拷贝容器。
func (s *Section) Clone() *Section {
	out := NewSection(s.Type, s.Kind)
	for _, name := range s.names {
		out.Set(name, s.named[name].Clone())
	}
	for _, b := range s.anon {
		out.Append(b.Clone())
	}
	return out
}

// Block 是最小 AST 节点：一个 config 段及其 option/list 条目。
type Block struct {
	Type    string
	Name    string
	Options map[string]string
	Lists   map[string][]string
}

// NewBlock 创建 Block 并初始化内部 map。
func NewBlock(typ, name string) *Block {
	return &Block{
		Type:    typ,
		Name:    name,
		Options: make(map[string]string),
		Lists:   make(map[string][]string),
	}
}

// SetOption 写入单值 option，同名覆盖。
func (b *Block) SetOption(key, value string) {
	if b.Options == nil {
		b.Options = make(map[string]string)
	}
	b.Options[key] = value
}

// Option 读取 option 值。
func (b *Block) Option(key string) (string, bool) {
	v, ok := b.Options[key]
	return v, ok
}

// AppendList 向 list 追加一个值，不存在时先创建。
func (b *Block) AppendList(key, value string) {
	if b.Lists == nil {
		b.Lists = make(map[string][]string)
	}
	b.Lists[key] = append(b.Lists[key], value)
}

// List 返回 list 的全部值。
func (b *Block) List(key string) []string {
	return b.Lists[key]
}

// OptionKeys 返回排序后的 option 键。
func (b *Block) OptionKeys() []string {
	return slices.Sorted(maps.Keys(b.Options))
}

// ListKeys 返回排序后的 list 键。
func (b *Block) ListKeys() []string {
	return slices.Sorted(maps.Keys(b.Lists))
}

// Clone 深拷贝块。
func (b *Block) Clone() *Block {
	out := NewBlock(b.Type, b.Name)
	maps.Copy(out.Options, b.Options)
	for k, v := range b.Lists {
		out.Lists[k] = slices.Clone(v)
	}
	return out
}

// Equal 比较两个块的内容（类型、名称、条目）。
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Type != other.Type || b.Name != other.Name {
		return false
	}
	if !maps.Equal(b.Options, other.Options) {
		return false
	}
	return maps.EqualFunc(b.Lists, other.Lists, slices.Equal[[]string])
}
