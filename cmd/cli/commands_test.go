package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edaviz/adapters/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const superstore = "Category,Sub-Category,Sales\nX,A,10\nX,B,5\nY,A,7\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunDescribe(t *testing.T) {
	ds, err := excel.Load(excel.MemoryFile{FileName: "ab.csv", Data: []byte("A,B,C\n1,2,x\n3,4,x\n")})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runDescribe(&buf, ds, false))
	out := buf.String()
	assert.Contains(t, out, "ab.csv: 2 rows, 3 columns")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "2.000000")
	assert.Contains(t, out, "unique")

	buf.Reset()
	require.NoError(t, runDescribe(&buf, ds, true))
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "numeric")
	assert.Contains(t, decoded, "text")
}

func TestChartCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "superstore.csv", superstore)
	out := filepath.Join(dir, "pie.html")

	cmd := newChartCmd()
	cmd.SetArgs([]string{input, "--kind", "Pie Chart", "--columns", "Category,Sales", "--out", out})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Pie Chart")
}

func TestChartCommandInsufficientColumns(t *testing.T) {
	input := writeFile(t, t.TempDir(), "superstore.csv", superstore)

	cmd := newChartCmd()
	cmd.SetArgs([]string{input, "--kind", "line", "--columns", "Sales"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "needs at least 2 selected columns")
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "superstore.csv", superstore)
	b := writeFile(t, dir, "plain.csv", "A,B\n1,2\n")
	outDir := filepath.Join(dir, "out")

	cmd := newReportCmd()
	cmd.SetArgs([]string{a, b, "--out-dir", outDir, "--jobs", "2"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "superstore_summary.json"))
	assert.FileExists(t, filepath.Join(outDir, "superstore_breakdown.html"))
	assert.FileExists(t, filepath.Join(outDir, "plain_summary.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "plain_breakdown.html"))
}

func TestReportCommandFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "notes.docx", "x")

	cmd := newReportCmd()
	cmd.SetArgs([]string{bad, "--out-dir", filepath.Join(dir, "out")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "unsupported file format .docx")
}

func TestReportCommandRejectsNonPositiveJobs(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "superstore.csv", superstore)

	for _, jobs := range []string{"0", "-1"} {
		t.Run(jobs, func(t *testing.T) {
			cmd := newReportCmd()
			cmd.SetArgs([]string{input, "--out-dir", filepath.Join(dir, "out"), "--jobs", jobs})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			done := make(chan error, 1)
			go func() { done <- cmd.Execute() }()
			select {
			case err := <-done:
				assert.ErrorContains(t, err, "--jobs must be at least 1")
			case <-time.After(5 * time.Second):
				t.Fatal("report did not return")
			}
		})
	}
}

func TestReportCommandRejectsCollidingNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))
	first := writeFile(t, filepath.Join(dir, "a"), "x.csv", superstore)
	second := writeFile(t, filepath.Join(dir, "b"), "x.csv", "A,B\n1,2\n")
	outDir := filepath.Join(dir, "out")

	cmd := newReportCmd()
	cmd.SetArgs([]string{first, second, "--out-dir", outDir})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "would both write x_summary.json")
	assert.NoDirExists(t, outDir)
}
