package templates

import (
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Debug builds get extra Android permissions used by the test suite
const (
	TestPermissionsMarker = "<!-- ADD TEST PERMISSIONS HERE -->"
	TestPermissions       = `<uses-permission android:name="android.permission.WRITE_CONTACTS" />`
)

// Render substitutes every ${KEY} of table in content. In debug builds the
// first test permissions marker is replaced by the test permissions.
func Render(content string, table types.Substitutions, configuration types.Configuration) string {
	content = table.Apply(content)
	if configuration.IsDebug() {
		content = strings.Replace(content, TestPermissionsMarker, TestPermissions, 1)
	}
	return content
}
