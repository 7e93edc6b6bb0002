package macros

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/expo"

func newTestContext(t *testing.T, env types.Env) (*Context, *process.FakeRunner) {
	t.Helper()
	runner := process.NewFakeRunner()
	if env == nil {
		env = types.Env{}
	}
	return &Context{
		Platform:      types.PlatformIOS,
		Configuration: types.ConfigurationDebug,
		Root:          testRoot,
		Env:           env,
		Config:        config.Default(),
		FS:            filesystem.NewMemory(),
		HTTP:          http.DefaultClient,
		Runner:        runner,
		Hostname:      func() (string, error) { return "build-box", nil },
		LANAddress:    func() (string, error) { return "127.0.0.1", nil },
		NewID:         func() string { return "generated-id" },
		Logger:        zerolog.Nop(),
	}, runner
}

func writeFile(t *testing.T, mc *Context, rel, content string) {
	t.Helper()
	require.NoError(t, filesystem.WriteFileAll(mc.FS, testRoot+"/"+rel, []byte(content)))
}

func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return port
}

// packagerServer serves a packager status endpoint and a manifest at /
func packagerServer(t *testing.T, manifestBody string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			_, _ = w.Write([]byte("packager-status:running"))
		default:
			_, _ = w.Write([]byte(manifestBody))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValue(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		v := Null()
		assert.True(t, v.IsNull())
		assert.Equal(t, "", v.Text())
		assert.Equal(t, "null", v.String())
	})

	t.Run("string", func(t *testing.T) {
		v := String(`say "hi"`)
		assert.Equal(t, KindString, v.Kind())
		assert.Equal(t, `say "hi"`, v.Text())
		assert.Equal(t, `"say \"hi\""`, v.String())
	})

	t.Run("json_is_compact", func(t *testing.T) {
		v, err := JSON(map[string]interface{}{"b": 1, "a": "x"})
		require.NoError(t, err)
		assert.Equal(t, KindJSON, v.Kind())
		assert.Equal(t, `{"a":"x","b":1}`, v.Text())
		assert.Equal(t, v.Text(), v.String())
	})

	t.Run("json_rejects_unencodable", func(t *testing.T) {
		_, err := JSON(make(chan int))
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	fixed := func(name string, v Value) Macro {
		return Func{MacroName: name, Fn: func(context.Context, *Context) (Value, error) { return v, nil }}
	}

	t.Run("keeps_registry_order", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		registry := []Macro{fixed("B", String("b")), fixed("A", Null()), fixed("C", String("c"))}

		result, err := Resolve(ctx, registry, mc)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A", "C"}, result.Names())
		assert.Equal(t, types.Substitutions{"A": "", "B": "b", "C": "c"}, result.Substitutions())
	})

	t.Run("producers_run_sequentially", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		var order []string
		record := func(name string) Macro {
			return Func{MacroName: name, Fn: func(context.Context, *Context) (Value, error) {
				order = append(order, name)
				return String(name), nil
			}}
		}

		_, err := Resolve(ctx, []Macro{record("one"), record("two"), record("three")}, mc)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, order)
	})

	t.Run("fail_fast_aborts", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		ran := false
		registry := []Macro{
			Func{MacroName: "BROKEN", Fn: func(context.Context, *Context) (Value, error) {
				return Value{}, stderrors.New("boom")
			}},
			Func{MacroName: "AFTER", Fn: func(context.Context, *Context) (Value, error) {
				ran = true
				return Null(), nil
			}},
		}

		result, err := Resolve(ctx, registry, mc)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMacroResolve))
		assert.Equal(t, "BROKEN", errors.GetErrorDetails(err)["macro"])
		assert.False(t, ran)
	})

	t.Run("tolerant_mode_resolves_to_null", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		mc.Config.Macros.FailFast = false
		registry := []Macro{
			Func{MacroName: "BROKEN", Fn: func(context.Context, *Context) (Value, error) {
				return Value{}, stderrors.New("boom")
			}},
			fixed("AFTER", String("ok")),
		}

		result, err := Resolve(ctx, registry, mc)
		require.NoError(t, err)
		v, ok := result.Lookup("BROKEN")
		require.True(t, ok)
		assert.True(t, v.IsNull())
		v, _ = result.Lookup("AFTER")
		assert.Equal(t, "ok", v.Text())
	})

	t.Run("rejects_duplicate_names", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		ran := false
		registry := []Macro{
			Func{MacroName: "X", Fn: func(context.Context, *Context) (Value, error) {
				ran = true
				return Null(), nil
			}},
			fixed("X", Null()),
		}

		_, err := Resolve(ctx, registry, mc)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.False(t, ran)
	})
}

func TestDefaultRegistry(t *testing.T) {
	var names []string
	for _, m := range DefaultRegistry() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{
		"TEST_APP_URI",
		"TEST_CONFIG",
		"TEST_SERVER_URL",
		"TEST_RUN_ID",
		"BUILD_MACHINE_LOCAL_HOSTNAME",
		"DEV_PUBLISHED_KERNEL_MANIFEST",
		"BUILD_MACHINE_KERNEL_MANIFEST",
		"TEMPORARY_SDK_VERSION",
		"INITIAL_URL",
	}, names)
}

func TestSimpleMacros(t *testing.T) {
	ctx := context.Background()

	t.Run("test_config_passthrough", func(t *testing.T) {
		mc, _ := newTestContext(t, types.Env{types.EnvTestConfig: `{"includeModules":["Basic"]}`})
		v, err := TestConfig{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, `{"includeModules":["Basic"]}`, v.Text())
	})

	t.Run("test_config_unset", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := TestConfig{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, KindString, v.Kind())
		assert.Equal(t, "", v.Text())
	})

	t.Run("test_run_id_from_env", func(t *testing.T) {
		mc, _ := newTestContext(t, types.Env{types.EnvUniverseBuildID: "abc-123"})
		v, err := TestRunID{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", v.Text())
	})

	t.Run("test_run_id_generated", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := TestRunID{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "generated-id", v.Text())
	})

	t.Run("initial_url_is_null", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := InitialURL{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.True(t, v.IsNull())
	})

	t.Run("sdk_version", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		writeFile(t, mc, "package.json", `{"name": "expo", "exp": {"sdkVersion": "UNVERSIONED"}}`)
		v, err := TemporarySDKVersion{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "UNVERSIONED", v.Text())
	})

	t.Run("sdk_version_missing_file_fails", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		_, err := TemporarySDKVersion{}.Resolve(ctx, mc)
		assert.Error(t, err)
	})

	t.Run("sdk_version_missing_field_fails", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		writeFile(t, mc, "package.json", `{"name": "expo"}`)
		_, err := TemporarySDKVersion{}.Resolve(ctx, mc)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestTestAppURI(t *testing.T) {
	ctx := context.Background()

	t.Run("env_wins", func(t *testing.T) {
		mc, _ := newTestContext(t, types.Env{types.EnvTestSuiteURI: "exp://example/test-suite"})
		v, err := TestAppURI{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "exp://example/test-suite", v.Text())
	})

	t.Run("served_locally", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		srv := packagerServer(t, `{}`)
		port := serverPort(t, srv)
		writeFile(t, mc, "apps/test-suite/.expo/packager-info.json", fmt.Sprintf(`{"packagerPort": %d}`, port))

		v, err := TestAppURI{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("exp://127.0.0.1:%d", port), v.Text())
	})

	t.Run("no_packager_info", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := TestAppURI{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})

	t.Run("packager_not_running", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("starting"))
		}))
		defer srv.Close()
		writeFile(t, mc, "apps/test-suite/.expo/packager-info.json", fmt.Sprintf(`{"packagerPort": %d}`, serverPort(t, srv)))

		v, err := TestAppURI{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})
}

func TestTestServerURL(t *testing.T) {
	ctx := context.Background()

	t.Run("running", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/expo-test-server-status" {
				_, _ = w.Write([]byte("running!"))
				return
			}
			http.NotFound(w, r)
		}))
		defer srv.Close()

		mc, _ := newTestContext(t, nil)
		mc.Config.TestServer.Port = serverPort(t, srv)

		v, err := TestServerURL{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d", mc.Config.TestServer.Port), v.Text())
	})

	t.Run("wrong_body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("running"))
		}))
		defer srv.Close()

		mc, _ := newTestContext(t, nil)
		mc.Config.TestServer.Port = serverPort(t, srv)

		v, err := TestServerURL{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "TODO", v.Text())
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		port := serverPort(t, srv)
		srv.Close()

		mc, _ := newTestContext(t, nil)
		mc.Config.TestServer.Port = port

		v, err := TestServerURL{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "TODO", v.Text())
	})

	t.Run("no_lan_address", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		mc.LANAddress = func() (string, error) { return "", stderrors.New("offline") }

		v, err := TestServerURL{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "TODO", v.Text())
	})
}

func TestBuildMachineLocalHostname(t *testing.T) {
	ctx := context.Background()

	t.Run("shell_app_builder", func(t *testing.T) {
		mc, runner := newTestContext(t, types.Env{types.EnvShellAppBuilder: "1"})
		v, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
		assert.Empty(t, runner.Calls)
	})

	t.Run("scutil", func(t *testing.T) {
		mc, runner := newTestContext(t, nil)
		runner.On(process.FakeResult{Output: []byte("Janes-MacBook\n")}, "scutil", "--get", "LocalHostName")

		v, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "Janes-MacBook.local", v.Text())
	})

	t.Run("scutil_missing_uses_hostname", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "build-box", v.Text())
	})

	t.Run("empty_scutil_output_uses_hostname", func(t *testing.T) {
		mc, runner := newTestContext(t, nil)
		runner.On(process.FakeResult{Output: []byte("\n")}, "scutil", "--get", "LocalHostName")

		v, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "build-box", v.Text())
	})

	t.Run("scutil_failure_uses_hostname", func(t *testing.T) {
		mc, runner := newTestContext(t, nil)
		runner.On(process.FakeResult{Err: stderrors.New("exit status 1")}, "scutil", "--get", "LocalHostName")

		v, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "build-box", v.Text())
	})

	t.Run("hostname_failure_is_an_error", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		mc.Hostname = func() (string, error) { return "", stderrors.New("no hostname") }

		_, err := BuildMachineLocalHostname{}.Resolve(ctx, mc)
		assert.Error(t, err)
	})
}

func TestDevPublishedKernelManifest(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches_kernel_manifest", func(t *testing.T) {
		var gotPlatform, gotSDK string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPlatform = r.Header.Get("Exponent-Platform")
			gotSDK = r.Header.Get("Exponent-SDK-Version")
			_, _ = w.Write([]byte(`{"name": "expo-home", "sdkVersion": "49.0.0"}`))
		}))
		defer srv.Close()

		mc, _ := newTestContext(t, nil)
		writeFile(t, mc, "dev-home-config.json", fmt.Sprintf(`{"url": %q}`, srv.URL+"/@dev/home"))
		writeFile(t, mc, "package.json", `{"exp": {"sdkVersion": "49.0.0"}}`)

		v, err := DevPublishedKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, KindJSON, v.Kind())
		assert.JSONEq(t, `{"name":"expo-home","id":"@exponent/home","sdkVersion":"UNVERSIONED"}`, v.Text())
		assert.Equal(t, "ios", gotPlatform)
		assert.Equal(t, "49.0.0", gotSDK)
	})

	t.Run("missing_config", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := DevPublishedKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, KindString, v.Kind())
		assert.Equal(t, "", v.Text())
	})

	t.Run("fetch_failure_on_turtle", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		mc, _ := newTestContext(t, types.Env{types.EnvTurtleWorkingDir: "/turtle"})
		writeFile(t, mc, "dev-home-config.json", fmt.Sprintf(`{"url": %q}`, srv.URL))
		writeFile(t, mc, "package.json", `{"exp": {"sdkVersion": "49.0.0"}}`)

		v, err := DevPublishedKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})
}

func TestBuildMachineKernelManifest(t *testing.T) {
	ctx := context.Background()

	serveHome := func(t *testing.T, mc *Context, body string) {
		t.Helper()
		srv := packagerServer(t, body)
		writeFile(t, mc, "home/.expo/packager-info.json", fmt.Sprintf(`{"packagerPort": %d}`, serverPort(t, srv)))
	}

	t.Run("shell_app_builder", func(t *testing.T) {
		mc, _ := newTestContext(t, types.Env{types.EnvShellAppBuilder: "1"})
		serveHome(t, mc, `{"name": "expo-home"}`)

		v, err := BuildMachineKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})

	t.Run("home_served_locally", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		serveHome(t, mc, `{"name": "expo-home", "id": "@local/home", "sdkVersion": "49.0.0"}`)

		v, err := BuildMachineKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"expo-home","id":"@local/home","sdkVersion":"UNVERSIONED"}`, v.Text())
	})

	t.Run("signed_manifest", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		serveHome(t, mc, `{"manifestString": "{\"name\":\"expo-home\"}", "signature": "sig"}`)

		v, err := BuildMachineKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"expo-home","id":"@exponent/home","sdkVersion":"UNVERSIONED"}`, v.Text())
	})

	t.Run("foreign_project", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		serveHome(t, mc, `{"name": "some-other-app"}`)

		v, err := BuildMachineKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})

	t.Run("not_served", func(t *testing.T) {
		mc, _ := newTestContext(t, nil)
		v, err := BuildMachineKernelManifest{}.Resolve(ctx, mc)
		require.NoError(t, err)
		assert.Equal(t, "", v.Text())
	})
}
