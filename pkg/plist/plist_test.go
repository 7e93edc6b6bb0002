package plist

import (
	"testing"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleVersion</key>
	<string>2.19.1.10001</string>
	<key>GMSApiKey</key>
	<string>${GOOGLE_MAPS_IOS_API_KEY}</string>
	<key>LSRequiresIPhoneOS</key>
	<true/>
	<key>UIDeviceFamily</key>
	<array>
		<integer>1</integer>
		<integer>2</integer>
	</array>
	<key>Fabric</key>
	<dict>
		<key>APIKey</key>
		<string>${FABRIC_API_KEY}</string>
		<key>Ratio</key>
		<real>0.5</real>
	</dict>
	<key>Blob</key>
	<data>AAEC</data>
</dict>
</plist>
`

func TestDecode(t *testing.T) {
	d, err := Decode([]byte(infoPlist))
	require.NoError(t, err)

	assert.Equal(t, []string{"CFBundleVersion", "GMSApiKey", "LSRequiresIPhoneOS", "UIDeviceFamily", "Fabric", "Blob"}, d.Keys())
	assert.Equal(t, "2.19.1.10001", d.String("CFBundleVersion"))

	b, ok := d.Bool("LSRequiresIPhoneOS")
	assert.True(t, ok)
	assert.True(t, b)

	family, _ := d.Get("UIDeviceFamily")
	assert.Equal(t, []interface{}{int64(1), int64(2)}, family)

	fabric, _ := d.Get("Fabric")
	require.IsType(t, &Dict{}, fabric)
	ratio, _ := fabric.(*Dict).Get("Ratio")
	assert.Equal(t, 0.5, ratio)

	blob, _ := d.Get("Blob")
	assert.Equal(t, Raw{Tag: "data", Text: "AAEC"}, blob)
}

func TestRoundTrip(t *testing.T) {
	d, err := Decode([]byte(infoPlist))
	require.NoError(t, err)

	encoded, err := Encode(d)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, string(encoded), `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN"`)
	assert.Contains(t, string(encoded), `<plist version="1.0">`)

	back, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, d, back)

	again, err := Encode(back)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), string(again), "encoding must be stable")
}

func TestMapStrings(t *testing.T) {
	d, err := Decode([]byte(infoPlist))
	require.NoError(t, err)

	d.MapStrings(func(s string) string {
		if s == "${FABRIC_API_KEY}" {
			return "fabric-key"
		}
		return s
	})

	fabric, _ := d.Get("Fabric")
	assert.Equal(t, "fabric-key", fabric.(*Dict).String("APIKey"))
	assert.Equal(t, "${GOOGLE_MAPS_IOS_API_KEY}", d.String("GMSApiKey"))
}

func TestDictEditing(t *testing.T) {
	d := NewDict()
	d.Set("A", "1")
	d.Set("B", true)
	d.Set("A", "2")
	d.Set("C", 3)

	assert.Equal(t, []string{"A", "B", "C"}, d.Keys())
	assert.Equal(t, "2", d.String("A"))

	d.Delete("B")
	d.Delete("missing")
	assert.Equal(t, []string{"A", "C"}, d.Keys())
	assert.Equal(t, 2, d.Len())

	encoded, err := Encode(d)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), "<integer>3</integer>")
}

func TestEncodeEscapesText(t *testing.T) {
	d := NewDict()
	d.Set("MANIFEST", `{"name":"a & <b>"}`)

	encoded, err := Encode(d)
	require.NoError(t, err)

	back, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a & <b>"}`, back.String("MANIFEST"))
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"not_xml":       "{}",
		"no_plist_root": `<?xml version="1.0"?><dict></dict>`,
		"array_root":    `<plist version="1.0"><array/></plist>`,
		"dangling_key":  `<plist version="1.0"><dict><key>A</key></dict></plist>`,
		"bad_integer":   `<plist version="1.0"><dict><key>A</key><integer>x</integer></dict></plist>`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPlistParse))
		})
	}

	_, err := Encode(func() *Dict { d := NewDict(); d.Set("X", struct{}{}); return d }())
	assert.Error(t, err)
}
