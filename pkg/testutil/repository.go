package testutil

// PublicKeys is the public keys.json of SampleRepository
const PublicKeys = `{
  "AMPLITUDE_KEY": "public-amplitude",
  "GOOGLE_MAPS_IOS_API_KEY": "public-maps-ios",
  "GOOGLE_MAPS_ANDROID_API_KEY": "public-maps-android",
  "FABRIC_API_KEY": "fabric-key",
  "FABRIC_API_SECRET": "fabric-secret",
  "TEST_RUN_ID": "overridden-by-macro"
}`

// AndroidManifestTemplate is the Android manifest template of SampleRepository
const AndroidManifestTemplate = `<manifest xmlns:android="http://schemas.android.com/apk/res/android">
  <!-- ADD TEST PERMISSIONS HERE -->
  <application>
    <meta-data android:name="com.google.android.geo.API_KEY" android:value="${GOOGLE_MAPS_ANDROID_API_KEY}"/>
    <meta-data android:name="testRunId" android:value="${TEST_RUN_ID}"/>
  </application>
</manifest>
`

// SampleRepository is a minimal repository that dynmacros can generate
// into for both platforms without network access.
func SampleRepository() FileTree {
	return FileTree{
		"package.json": `{"name": "expo", "exp": {"sdkVersion": "UNVERSIONED"}}`,
		"template-files": FileTree{
			"keys.json":          PublicKeys,
			"android-paths.json": `{"AndroidManifest.xml": "android/app/src/main"}`,
			"ios-paths.json":     `{"Podfile": "ios"}`,
			"android": FileTree{
				"AndroidManifest.xml": AndroidManifestTemplate,
			},
			"ios": FileTree{
				"Podfile": "# test run ${TEST_RUN_ID}\nplatform :ios, '13.0'\n",
			},
		},
	}
}
