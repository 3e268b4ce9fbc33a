package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const demoLangYAML = `
name: test
sourceExt: .elt
compiledExt: .elc
identifier: "ECLT1"
classes:
  - name: StringTests
    attributes:
      - name: string
        type: string
`

func writeFixtures(t *testing.T) (dir, langPath, srcPath string) {
	t.Helper()
	dir = t.TempDir()
	langPath = filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(langPath, []byte(demoLangYAML), 0o644))
	srcPath = filepath.Join(dir, "demo.elt")
	require.NoError(t, os.WriteFile(srcPath, []byte("#language test\nStringTests demo { string = \"hi\"; }\n"), 0o644))
	return dir, langPath, srcPath
}

func runRoot(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	root := newRootCmd()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err = root.Execute()
	return stdout, stderr, err
}

func TestCompileThenDecompileRoundTrip(t *testing.T) {
	_, langPath, srcPath := writeFixtures(t)

	out, _, err := runRoot(t, "compile", srcPath, "--lang", langPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out.Bytes(), []byte("ECLT\x31")))

	dir := t.TempDir()
	compiledPath := filepath.Join(dir, "demo.elc")
	require.NoError(t, os.WriteFile(compiledPath, out.Bytes(), 0o644))

	src, _, err := runRoot(t, "decompile", compiledPath, "--lang", langPath)
	require.NoError(t, err)
	require.Contains(t, src.String(), "StringTests demo")
	require.Contains(t, src.String(), `string = "hi";`)
}

func TestInspectPrintsObjectTree(t *testing.T) {
	_, langPath, srcPath := writeFixtures(t)

	out, _, err := runRoot(t, "inspect", srcPath, "--lang", langPath)
	require.NoError(t, err)
	require.Contains(t, out.String(), "StringTests demo")
	require.Contains(t, out.String(), `string = "hi"`)
}

func TestInspectFiltersByClass(t *testing.T) {
	_, langPath, srcPath := writeFixtures(t)

	out, _, err := runRoot(t, "inspect", srcPath, "--lang", langPath, "--class", "NoSuchClass")
	require.NoError(t, err)
	require.NotContains(t, out.String(), "demo\n")
}

func TestCompileRequiresLanguageBinding(t *testing.T) {
	_, _, srcPath := writeFixtures(t)
	_, _, err := runRoot(t, "compile", srcPath)
	require.Error(t, err)
}

func TestCompileAcceptsLanguageManifest(t *testing.T) {
	dir, langPath, srcPath := writeFixtures(t)
	manifestPath := filepath.Join(dir, "register.yaml")
	manifest := "languages:\n  - " + filepath.Base(langPath) + "\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	out, _, err := runRoot(t, "compile", srcPath, "--lang-manifest", manifestPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out.Bytes(), []byte("ECLT\x31")))
}
