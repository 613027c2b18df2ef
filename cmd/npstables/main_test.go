package main

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportText = "Stand Table\nSummary\n" +
	"\f" +
	"Stand Table\n" +
	"Lifeform Species Name Con Avg Min Max D Ch Ab Oft\n" +
	"Tree\n" +
	"Pinus ponderosa 12.5 45.0 1.0 90.0\n" +
	"Shrub\n" +
	"Purshia tridentata 3 1.5 0.5 4\n" +
	"Foo 1.0 2.0\n" +
	"A - 6\n" +
	"Quercus gambelii 1 2 3 4\n"

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte(reportText), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, *test.Hook, error) {
	t.Helper()
	log, hook := test.NewNullLogger()
	cmd := newRootCmd(log)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), hook, err
}

func TestExtractToStdout(t *testing.T) {
	input := writeReport(t)

	out, hook, err := run(t, "extract", "-i", input, "--map", "2=1001,1002")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"MapUnitId,Species,Class,Con,Avg,Min,Max",
		"1001,Purshia tridentata,Shrub,3,1.5,0.5,4",
		"1002,Purshia tridentata,Shrub,3,1.5,0.5,4",
		"1001,Pinus ponderosa,Tree,12.5,45,1,90",
		"1002,Pinus ponderosa,Tree,12.5,45,1,90",
		"",
	}, "\n"), out)

	var warned []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = append(warned, e)
		}
	}
	require.Len(t, warned, 1)
	assert.Equal(t, "row parse", warned[0].Data["kind"])
	assert.Equal(t, 2, warned[0].Data["page"])
	assert.Equal(t, 7, warned[0].Data["line"])
	assert.Equal(t, "Foo 1.0 2.0", warned[0].Data["text"])
}

func TestExtractPagesMode(t *testing.T) {
	input := writeReport(t)

	out, _, err := run(t, "extract", "-i", input, "--pages", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "\n2,Pinus ponderosa,Tree,12.5,45,1,90\n")
}

func TestExtractMappingFileToGzip(t *testing.T) {
	input := writeReport(t)
	dir := t.TempDir()
	mappingPath := filepath.Join(dir, "pages.json")
	require.NoError(t, os.WriteFile(mappingPath, []byte(`{"1001": 2, "999": 9}`), 0o644))
	output := filepath.Join(dir, "out.csv.gz")

	_, hook, err := run(t, "extract", "-i", input, "-m", mappingPath, "-o", output)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(zr)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "1001,Pinus ponderosa,Tree,12.5,45,1,90\n")

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, 2, last.Data["records"])

	var kinds []interface{}
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			kinds = append(kinds, e.Data["kind"])
		}
	}
	assert.Contains(t, kinds, "missing page")
}

func TestExtractStrictMissingPage(t *testing.T) {
	input := writeReport(t)

	_, _, err := run(t, "extract", "-i", input, "--map", "9=X", "--strict")
	assert.ErrorContains(t, err, "page 9")
}

func TestExtractErrors(t *testing.T) {
	input := writeReport(t)

	_, _, err := run(t, "extract")
	assert.ErrorContains(t, err, "--input is required")

	_, _, err = run(t, "extract", "-i", input, "--map", "nope")
	assert.Error(t, err)

	_, _, err = run(t, "extract", "-i", input, "--log-level", "loud")
	assert.Error(t, err)

	_, _, err = run(t, "extract", "-i", input, "-m", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExtractCustomClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("Forb\nBalsamorhiza sagittata 20 2 1 5\n"), 0o644))

	out, _, err := run(t, "extract", "-i", path, "--class", "Forb")
	require.NoError(t, err)
	assert.Contains(t, out, "1,Balsamorhiza sagittata,Forb,20,2,1,5\n")
}

func TestLinesCommand(t *testing.T) {
	input := writeReport(t)

	out, _, err := run(t, "lines", "-i", input, "--pages", "2", "--noise-substring", "Quercus")
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"PAGE", "LINE", "TAG", "TEXT"}, strings.Fields(rows[0]))
	assert.Equal(t, []string{"2", "3", "lifeform(Tree)", "Tree"}, strings.Fields(rows[3]))
	assert.Equal(t, []string{"2", "8", "section-end", "A", "-", "6"}, strings.Fields(rows[8]))
	assert.Equal(t, "noise", strings.Fields(rows[9])[2])
}
