package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/byamlkit/pkg/byaml"
)

// testCourse is the tree written by writeTestFile.
func testCourse() *byaml.Dictionary {
	obj := byaml.NewDictionary()
	obj.Set("UnitIdName", byaml.String("ItemBox"))
	obj.Set("ObjId", byaml.Int(1018))
	obj.Set("Translate", byaml.NewVector3Dictionary(byaml.Vector3{X: 10, Y: 0, Z: -20}))

	route := byaml.Path{
		{Position: byaml.Vector3{X: 1, Y: 2, Z: 3}, Normal: byaml.Vector3{Y: 1}},
		{Position: byaml.Vector3{X: 4, Y: 5, Z: 6}, Normal: byaml.Vector3{Y: 1}, Unknown: 0xFF},
	}

	root := byaml.NewDictionary()
	root.Set("LapNumber", byaml.Int(3))
	root.Set("HeadLight", byaml.String("On"))
	root.Set("IsFirstLeft", byaml.Bool(true))
	root.Set("Obj", byaml.NewArray(obj))
	root.Set("Route", byaml.PathRef{Path: route})
	return root
}

// writeTestFile encodes testCourse into a temporary BYAML file.
func writeTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.byaml")
	f := &byaml.File{Root: testCourse()}
	if err := f.Save(path, byaml.EncodeOptions{}); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// resetFlags restores global flags to their defaults.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	encodingName = "utf-8"
	limitsName = "default"
	dumpDepth = 0
	getVector = false
	exportOutput = ""
	importOutput = ""
	importSortKeys = false
	importForce = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done
	r.Close()

	return string(out), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
