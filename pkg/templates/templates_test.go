package templates

import (
	"context"
	"testing"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/internal/hashutil"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	root         = "/expo"
	templatesDir = "/expo/template-files"
)

const manifestTemplate = `<manifest>
  <!-- ADD TEST PERMISSIONS HERE -->
  <meta-data android:name="com.google.android.geo.API_KEY" android:value="${GOOGLE_MAPS_ANDROID_API_KEY}"/>
</manifest>
`

func TestRender(t *testing.T) {
	table := types.Substitutions{"TEST_RUN_ID": "abc-123", "KEY": "k"}

	t.Run("replaces_every_occurrence", func(t *testing.T) {
		out := Render("id=${TEST_RUN_ID} again=${TEST_RUN_ID}", table, types.ConfigurationRelease)
		assert.Equal(t, "id=abc-123 again=abc-123", out)
	})

	t.Run("exact_tokens_only", func(t *testing.T) {
		out := Render("$TEST_RUN_ID {TEST_RUN_ID} ${TEST_RUN_IDX} ${UNKNOWN}", table, types.ConfigurationRelease)
		assert.Equal(t, "$TEST_RUN_ID {TEST_RUN_ID} ${TEST_RUN_IDX} ${UNKNOWN}", out)
	})

	t.Run("debug_adds_test_permissions", func(t *testing.T) {
		out := Render(TestPermissionsMarker, table, types.ConfigurationDebug)
		assert.Equal(t, TestPermissions, out)
	})

	t.Run("release_keeps_marker", func(t *testing.T) {
		out := Render(TestPermissionsMarker, table, types.ConfigurationRelease)
		assert.Equal(t, TestPermissionsMarker, out)
	})

	t.Run("only_first_marker", func(t *testing.T) {
		out := Render(TestPermissionsMarker+"\n"+TestPermissionsMarker, table, types.ConfigurationDebug)
		assert.Equal(t, TestPermissions+"\n"+TestPermissionsMarker, out)
	})
}

func setupTemplates(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	for path, content := range files {
		require.NoError(t, filesystem.WriteFileAll(fsys, path, []byte(content)))
	}
	return fsys
}

func TestManifestPairs(t *testing.T) {
	m := Manifest{
		"AndroidManifest.xml":  "android/app/src/main",
		"google-services.json": "android/app",
	}

	pairs := m.Pairs(templatesDir, root, types.PlatformAndroid)
	assert.Equal(t, []Pair{
		{
			Name:        "AndroidManifest.xml",
			Source:      "/expo/template-files/android/AndroidManifest.xml",
			Destination: "/expo/android/app/src/main/AndroidManifest.xml",
		},
		{
			Name:        "google-services.json",
			Source:      "/expo/template-files/android/google-services.json",
			Destination: "/expo/android/app/google-services.json",
		},
	}, pairs)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	table := types.Substitutions{"GOOGLE_MAPS_ANDROID_API_KEY": "maps-key", "TEST_RUN_ID": "abc-123"}
	dest := "/expo/android/app/src/main/AndroidManifest.xml"

	newFS := func(t *testing.T) types.FS {
		return setupTemplates(t, map[string]string{
			templatesDir + "/android-paths.json": `{
				// copied on every build
				"AndroidManifest.xml": "android/app/src/main",
				"run-id.txt": "android/app",
				"missing.txt": "android/app",
			}`,
			templatesDir + "/android/AndroidManifest.xml": manifestTemplate,
			templatesDir + "/android/run-id.txt":          "${TEST_RUN_ID}",
		})
	}

	t.Run("renders_and_reports", func(t *testing.T) {
		fsys := newFS(t)
		report, err := NewCopier(fsys, root, templatesDir).Copy(ctx, types.PlatformAndroid, types.ConfigurationDebug, table)
		require.NoError(t, err)

		require.Len(t, report.Files, 3)
		assert.Equal(t, "AndroidManifest.xml", report.Files[0].Name)
		assert.Equal(t, OutcomeWritten, report.Files[0].Outcome)
		assert.Equal(t, "missing.txt", report.Files[1].Name)
		assert.Equal(t, OutcomeSkipped, report.Files[1].Outcome)
		assert.Empty(t, report.Files[1].Checksum)
		assert.Equal(t, OutcomeWritten, report.Files[2].Outcome)
		assert.Equal(t, hashutil.Checksum([]byte("abc-123")), report.Files[2].Checksum)

		data, err := fsys.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), `android:value="maps-key"`)
		assert.Contains(t, string(data), TestPermissions)
		assert.NotContains(t, string(data), TestPermissionsMarker)

		runID, err := fsys.ReadFile("/expo/android/app/run-id.txt")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", string(runID))

		_, exists, err := filesystem.ReadIfExists(fsys, "/expo/android/app/missing.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("second_run_writes_nothing", func(t *testing.T) {
		fsys := newFS(t)
		copier := NewCopier(fsys, root, templatesDir)

		_, err := copier.Copy(ctx, types.PlatformAndroid, types.ConfigurationDebug, table)
		require.NoError(t, err)

		report, err := copier.Copy(ctx, types.PlatformAndroid, types.ConfigurationDebug, table)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Count(OutcomeWritten))
		assert.Equal(t, 2, report.Count(OutcomeUnchanged))
		assert.Equal(t, 1, report.Count(OutcomeSkipped))
	})

	t.Run("release_keeps_marker", func(t *testing.T) {
		fsys := newFS(t)
		_, err := NewCopier(fsys, root, templatesDir).Copy(ctx, types.PlatformAndroid, types.ConfigurationRelease, table)
		require.NoError(t, err)

		data, err := fsys.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), TestPermissionsMarker)
		assert.NotContains(t, string(data), "WRITE_CONTACTS")
	})

	t.Run("missing_manifest", func(t *testing.T) {
		fsys := newFS(t)
		_, err := NewCopier(fsys, root, templatesDir).Copy(ctx, types.PlatformIOS, types.ConfigurationDebug, table)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateManifest))
	})

	t.Run("canceled_context", func(t *testing.T) {
		fsys := newFS(t)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewCopier(fsys, root, templatesDir).Copy(canceled, types.PlatformAndroid, types.ConfigurationDebug, table)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
