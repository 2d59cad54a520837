package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffcrunch"
)

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "poem.txt")
	outPath := filepath.Join(dir, "poem.huf")
	backPath := filepath.Join(dir, "poem.out.txt")
	text := "Tyger Tyger, burning bright,\nIn the forests of the night;\n"
	require.NoError(t, os.WriteFile(inPath, []byte(text), 0o666))

	var stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"compress", "-in", inPath, "-out", outPath}, &stderr), stderr.String())
	require.Contains(t, stderr.String(), "msg=compressed")
	require.FileExists(t, outPath+huffcrunch.SidecarSuffix)

	stderr.Reset()
	require.Equal(t, 0, run([]string{"decompress", "-v", "-in", outPath, "-out", backPath}, &stderr), stderr.String())
	require.Contains(t, stderr.String(), "msg=decompressed")
	require.Contains(t, stderr.String(), "Huffman table with")

	back, err := os.ReadFile(backPath)
	require.NoError(t, err)
	require.Equal(t, text, string(back))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	require.Equal(t, 2, run(nil, &stderr))
	require.Equal(t, 2, run([]string{"compress"}, &stderr))
	require.Equal(t, 2, run([]string{"explode", "-in", "a", "-out", "b"}, &stderr))

	stderr.Reset()
	missing := filepath.Join(dir, "missing.txt")
	require.Equal(t, 1, run([]string{"compress", "-in", missing, "-out", filepath.Join(dir, "x.huf")}, &stderr))
	require.Contains(t, stderr.String(), "kind=io")

	emptyPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o666))
	stderr.Reset()
	require.Equal(t, 1, run([]string{"compress", "-in", emptyPath, "-out", filepath.Join(dir, "e.huf")}, &stderr))
	require.Contains(t, stderr.String(), "kind=empty-input")

	// A stream paired with another stream's table.
	aPath := filepath.Join(dir, "a.txt")
	bPath := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(aPath, []byte("aaabbc"), 0o666))
	require.NoError(t, os.WriteFile(bPath, []byte("abcabc"), 0o666))
	require.Equal(t, 0, run([]string{"compress", "-in", aPath, "-out", aPath + ".huf"}, &stderr))
	require.Equal(t, 0, run([]string{"compress", "-in", bPath, "-out", bPath + ".huf"}, &stderr))

	stderr.Reset()
	args := []string{"decompress", "-in", aPath + ".huf", "-table", bPath + ".huf" + huffcrunch.SidecarSuffix, "-out", filepath.Join(dir, "mixed.txt")}
	require.Equal(t, 1, run(args, &stderr))
	require.Contains(t, stderr.String(), "kind=malformed-stream")

	// A sidecar whose symbol count disagrees with the stream.
	res, err := huffcrunch.CompressString("aabbaabbaabbaabb")
	require.NoError(t, err)
	alignedPath := filepath.Join(dir, "aligned.huf")
	require.NoError(t, os.WriteFile(alignedPath, res.Data, 0o666))
	raw, err := huffcrunch.MarshalSidecar(res.Table, res.Data, res.SymbolCount+1)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(alignedPath+huffcrunch.SidecarSuffix, raw, 0o666))

	stderr.Reset()
	badOut := filepath.Join(dir, "aligned.txt")
	require.Equal(t, 1, run([]string{"decompress", "-in", alignedPath, "-out", badOut}, &stderr))
	require.Contains(t, stderr.String(), "kind=malformed-stream")
	require.NoFileExists(t, badOut)
}
