// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alncontain/internal/app"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fixture(t *testing.T, hits int) (queryIdx, subjectIdx, report string) {
	t.Helper()
	dir := t.TempDir()
	queryIdx = write(t, dir, "queries.fai", "qa\t100\t9\t60\t61\nqb\t200\t120\t60\t61\n")
	subjectIdx = write(t, dir, "subjects.fai", "s1\t5000\t9\t60\t61\ns2\t3000\t80\t60\t61\n")

	var sb strings.Builder
	for i := 0; i < hits; i++ {
		q, s := "qa", "s1"
		if i%3 == 0 {
			q, s = "qb", "s2"
		}
		start := 1 + (i*7)%40
		fmt.Fprintf(&sb, "%s\t%s\t99.0\t60\t1\t0\t%d\t%d\t101\t160\t1e-40\t180\n",
			q, s, start, start+59)
	}
	report = write(t, dir, "hits.tsv", sb.String())
	return
}

func TestEndToEnd(t *testing.T) {
	q, s, r := fixture(t, 6)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"-q", q, "-s", s, "-a", r,
		"--min-identity", "90", "--threshold", "0.3",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if out.Len() == 0 {
		t.Fatalf("expected text output")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	q, s, r := fixture(t, 200)

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"-q", q, "-s", s, "-a", r,
			"--min-identity", "90", "--threshold", "0.3",
			"--threads", fmt.Sprint(threads),
			"--output", "json", "--quiet",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial:\n--- serial ---\n%s\n--- parallel ---\n%s", serial, parallel)
	}
}

func TestOutputFormatsAgreeOnCalls(t *testing.T) {
	q, s, r := fixture(t, 12)

	run := func(format string) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"-q", q, "-s", s, "-a", r,
			"--min-identity", "90", "--threshold", "0.3",
			"--output", format, "--quiet",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("%s: exit %d err %s", format, code, errB.String())
		}
		return out.String()
	}

	jsonOut := run("json")
	jsonlOut := run("jsonl")
	for _, pair := range []string{`"query_id": "qa"`, `"query_id": "qb"`} {
		if !strings.Contains(jsonOut, pair) {
			t.Fatalf("json output missing %s:\n%s", pair, jsonOut)
		}
	}
	for _, pair := range []string{`"query_id":"qa"`, `"query_id":"qb"`} {
		if !strings.Contains(jsonlOut, pair) {
			t.Fatalf("jsonl output missing %s:\n%s", pair, jsonlOut)
		}
	}
	if lines := strings.Count(jsonlOut, "\n"); lines != 2 {
		t.Fatalf("expected 2 jsonl lines, got %d", lines)
	}
}
