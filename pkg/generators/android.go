package generators

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"text/template"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var javaTemplate = template.Must(template.ParseFS(templatesFS, "templates/build_constants.java.tmpl"))

// Android renders the macros as a Java class of String constants
type Android struct {
	fs     types.FS
	cfg    *config.Config
	logger zerolog.Logger
}

func NewAndroid(fs types.FS, cfg *config.Config) *Android {
	return &Android{fs: fs, cfg: cfg, logger: logging.GetLogger("generators.android")}
}

func (g *Android) Platform() types.Platform {
	return types.PlatformAndroid
}

func (g *Android) Generate(_ context.Context, gc *Context) (*Output, error) {
	path := buildConstantsPath(gc, g.cfg.Paths.AndroidBuildConstants)

	source, err := RenderJava(g.cfg.Android.Package, g.cfg.Android.Class, gc.Macros)
	if err != nil {
		return nil, err
	}

	written, err := filesystem.WriteIfChanged(g.fs, path, source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path).WithDetail("path", path)
	}

	g.logger.Info().Str("path", path).Bool("written", written).Msg("Generated Android build constants")
	return &Output{Path: path, Written: written}, nil
}

// Cleanup removes the generated class
func (g *Android) Cleanup(_ context.Context, gc *Context) error {
	path := buildConstantsPath(gc, g.cfg.Paths.AndroidBuildConstants)

	if _, err := g.fs.Stat(path); err != nil {
		return nil
	}
	if err := g.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "removing %s", path)
	}
	g.logger.Info().Str("path", path).Msg("Removed Android build constants")
	return nil
}

type javaConstant struct {
	Name    string
	Literal string
}

// RenderJava renders the constants class, one constant per macro in
// resolution order
func RenderJava(pkg, class string, result *macros.Result) ([]byte, error) {
	data := struct {
		Package   string
		Class     string
		Constants []javaConstant
	}{Package: pkg, Class: class}

	if result != nil {
		for _, e := range result.Entries {
			data.Constants = append(data.Constants, javaConstant{Name: e.Name, Literal: javaLiteral(e.Value)})
		}
	}

	var buf bytes.Buffer
	if err := javaTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, errors.ErrGenerate, "rendering Java build constants")
	}
	return buf.Bytes(), nil
}

// javaLiteral renders a value as a Java expression. JSON string escapes are
// valid Java escapes.
func javaLiteral(v macros.Value) string {
	if v.IsNull() {
		return "null"
	}
	quoted, err := json.Marshal(v.Text())
	if err != nil {
		return "null"
	}
	return string(quoted)
}
