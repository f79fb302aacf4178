package uciconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
)

func namedDoc(typ string, blocks ...*uci.Block) *uci.Document {
	doc := uci.NewDocument()
	section := uci.NewSection(typ, uci.KindNamed)
	for _, b := range blocks {
		section.Set(b.Name, b)
	}
	doc.Put(section)
	return doc
}

func anonDoc(typ string, blocks ...*uci.Block) *uci.Document {
	doc := uci.NewDocument()
	section := uci.NewSection(typ, uci.KindAnonymous)
	for _, b := range blocks {
		section.Append(b)
	}
	doc.Put(section)
	return doc
}

func block(typ, name string, options map[string]string, lists map[string][]string) *uci.Block {
	b := uci.NewBlock(typ, name)
	for k, v := range options {
		b.SetOption(k, v)
	}
	for k, vs := range lists {
		for _, v := range vs {
			b.AppendList(k, v)
		}
	}
	return b
}

func TestMerge_NamedOptionsOverride(t *testing.T) {
	base := namedDoc("system", block("system", "main", map[string]string{"hostname": "default", "timezone": "UTC"}, nil))
	override := namedDoc("system", block("system", "main", map[string]string{"hostname": "Router1"}, nil))

	merged, err := Merge([]*uci.Document{base, override}, nil)
	require.NoError(t, err)

	section, ok := merged.Section("system")
	require.True(t, ok)
	main, ok := section.Lookup("main")
	require.True(t, ok)
	assert.Equal(t, "Router1", main.Options["hostname"])
	assert.Equal(t, "UTC", main.Options["timezone"])

	// 输入不能被修改
	orig, _ := base.Section("system")
	b, _ := orig.Lookup("main")
	assert.Equal(t, "default", b.Options["hostname"])
}

func TestMerge_NamedListsAppendWithoutDuplicates(t *testing.T) {
	base := namedDoc("dnsmasq", block("dnsmasq", "main", nil, map[string][]string{"server": {"8.8.8.8"}}))
	override := namedDoc("dnsmasq", block("dnsmasq", "main", nil, map[string][]string{"server": {"8.8.8.8", "1.1.1.1"}}))

	merged, err := Merge([]*uci.Document{base, override}, nil)
	require.NoError(t, err)

	section, _ := merged.Section("dnsmasq")
	main, _ := section.Lookup("main")
	assert.Equal(t, []string{"8.8.8.8", "1.1.1.1"}, main.List("server"))
}

func TestMerge_DifferentNamesAppended(t *testing.T) {
	base := namedDoc("interface", block("interface", "wg0", map[string]string{"proto": "wireguard"}, nil))
	override := namedDoc("interface", block("interface", "lan", map[string]string{"proto": "static"}, nil))

	merged, err := Merge([]*uci.Document{base, override}, nil)
	require.NoError(t, err)

	section, _ := merged.Section("interface")
	assert.Equal(t, []string{"wg0", "lan"}, section.Names())
}

func TestMerge_AnonymousSkipDuplicates(t *testing.T) {
	base := anonDoc("host", block("host", "", map[string]string{"ip": "10.0.0.5"}, nil))
	override := anonDoc("host",
		block("host", "", map[string]string{"ip": "10.0.0.5"}, nil), // 完全相同
		block("host", "", map[string]string{"ip": "10.0.0.6"}, nil),
	)

	merged, err := Merge([]*uci.Document{base, override}, nil)
	require.NoError(t, err)

	section, _ := merged.Section("host")
	require.Equal(t, 2, section.Len())
	assert.Equal(t, "10.0.0.6", section.Blocks()[1].Options["ip"])
}

func TestMerge_VariantConflictReported(t *testing.T) {
	base := namedDoc("host", block("host", "a", map[string]string{"ip": "10.0.0.1"}, nil))
	override := anonDoc("host", block("host", "", map[string]string{"ip": "10.0.0.2"}, nil))

	var sink diag.Collector
	merged, err := Merge([]*uci.Document{base, override}, &sink)
	require.NoError(t, err)

	assert.Equal(t, []diag.Code{diag.CodeVariantConflict}, sink.Codes())
	section, _ := merged.Section("host")
	assert.Equal(t, uci.KindNamed, section.Kind)
	assert.Equal(t, 1, section.Len())
}

func TestMerge_MultipleLayers(t *testing.T) {
	global := namedDoc("wifi-device", block("wifi-device", "radio0", map[string]string{"channel": "0", "country": "00"}, nil))
	region := namedDoc("wifi-device", block("wifi-device", "radio0", map[string]string{"country": "US"}, nil))
	device := namedDoc("wifi-device", block("wifi-device", "radio0", map[string]string{"channel": "10"}, nil))
	device.Package = "wireless"

	merged, err := Merge([]*uci.Document{global, region, device}, nil)
	require.NoError(t, err)

	assert.Equal(t, "wireless", merged.Package)
	section, _ := merged.Section("wifi-device")
	radio, _ := section.Lookup("radio0")
	assert.Equal(t, "10", radio.Options["channel"])
	assert.Equal(t, "US", radio.Options["country"])
}

func TestMerge_InvalidInput(t *testing.T) {
	_, err := Merge(nil, nil)
	require.Error(t, err)
	assert.True(t, ucierr.Is(err, ucierr.KindValidation))

	_, err = Merge([]*uci.Document{uci.NewDocument(), nil}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document[1] is nil")
}
