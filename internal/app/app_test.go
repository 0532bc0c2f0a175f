package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/compiler"
	"github.com/ternarybob/wdkres/internal/metadata"
	"github.com/ternarybob/wdkres/internal/models"
)

// scriptedRunner answers the metadata query with doc and the compiler with code
type scriptedRunner struct {
	doc      string
	code     int
	compiled [][]string
}

func (r *scriptedRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte(r.doc), nil
}

func (r *scriptedRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	r.compiled = append(r.compiled, append([]string{name}, args...))
	return r.code, nil
}

func newTestApp(t *testing.T, runner *scriptedRunner, manifest string) *App {
	t.Helper()
	dir := t.TempDir()

	config := common.NewDefaultConfig()
	config.Manifest.Path = filepath.Join(dir, "Cargo.toml")
	config.Descriptor.Path = filepath.Join(dir, "resources.rc")
	config.Compiler.EnvVar = "WDKRES_TEST_UNSET_RC"
	config.Compiler.DefaultPath = "rc-test.exe"
	require.NoError(t, os.WriteFile(config.Manifest.Path, []byte(manifest), 0644))

	a, err := NewWithRunner(config, arbor.NewLogger(), runner)
	require.NoError(t, err)
	return a
}

const testDoc = `{"packages": [{"name": "dep"}, {"name": "drv", "metadata": {"wdk": {"companyname": "Contoso", "copyright": "(c)", "productname": "Drv"}}}]}`

func TestGenerateAndCompile(t *testing.T) {
	runner := &scriptedRunner{doc: testDoc}
	a := newTestApp(t, runner, "version = \"1.2.3\"\ndescription = \"A driver\"\n")

	invocation, err := a.GenerateAndCompile(context.Background(), models.IncludePathSet{`C:\inc1`, `C:\inc2`})
	require.NoError(t, err)

	assert.Equal(t, []string{`/I C:\inc1`, `/I C:\inc2`, a.Config.Descriptor.Path}, invocation.Args)
	assert.Equal(t, [][]string{{"rc-test.exe", `/I C:\inc1`, `/I C:\inc2`, a.Config.Descriptor.Path}}, runner.compiled)

	data, err := os.ReadFile(a.Config.Descriptor.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `#define VER_FILEVERSION_STR    "1.2.3.0"`)
	assert.Contains(t, string(data), `#define VER_COMPANYNAME_STR         "Contoso"`)
}

func TestGenerateAndCompile_CompilerFailure(t *testing.T) {
	a := newTestApp(t, &scriptedRunner{doc: testDoc, code: 1}, "")

	_, err := a.GenerateAndCompile(context.Background(), nil)
	assert.ErrorIs(t, err, compiler.ErrCompileFailed)
}

func TestGenerateAndCompile_NonUnicodeIncludeWritesNothing(t *testing.T) {
	runner := &scriptedRunner{doc: testDoc}
	a := newTestApp(t, runner, "")

	_, err := a.GenerateAndCompile(context.Background(), models.IncludePathSet{"\xff"})
	assert.ErrorIs(t, err, models.ErrNonUnicodePath)
	assert.NoFileExists(t, a.Config.Descriptor.Path)
	assert.Empty(t, runner.compiled)
}

func TestGenerate_NoPackagesStillWritesDescriptor(t *testing.T) {
	runner := &scriptedRunner{doc: `{"packages": [{"name": "only"}]}`}
	a := newTestApp(t, runner, "")

	result, err := a.Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, result.Warnings, metadata.NoPackagesFound)
	assert.Equal(t, models.MetadataRecord{}, result.Record)
	assert.FileExists(t, a.Config.Descriptor.Path)
	assert.Empty(t, runner.compiled)
}

func TestGenerate_MetadataParseFailureIsFatal(t *testing.T) {
	a := newTestApp(t, &scriptedRunner{doc: "not json"}, "")

	_, err := a.Generate(context.Background())
	assert.True(t, errors.Is(err, metadata.ErrMetadataParse))
	assert.NoFileExists(t, a.Config.Descriptor.Path)
}

func TestNewWithRunner_InvalidConfig(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Descriptor.Path = ""

	_, err := NewWithRunner(config, arbor.NewLogger(), &scriptedRunner{})
	assert.Error(t, err)
}
