package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/byamlkit/internal/logger"
	"github.com/joshuapare/byamlkit/pkg/byaml"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := writeTestFile(t)
	dir := t.TempDir()
	yml := filepath.Join(dir, "course.yml")
	out := filepath.Join(dir, "course.byaml")

	resetFlags()
	exportOutput = yml
	if _, err := captureOutput(t, func() error { return runExport([]string{src}) }); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	text, err := os.ReadFile(yml)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(text), []string{"LapNumber: 3", "UnitIdName: ItemBox", "Route: !path"})

	resetFlags()
	importOutput = out
	output, err := captureOutput(t, func() error { return runImport(importCmd, []string{yml}) })
	if err != nil {
		t.Fatalf("runImport: %v", err)
	}
	assertContains(t, output, []string{"BYAML created successfully"})

	f, err := byaml.Open(out)
	if err != nil {
		t.Fatalf("open imported file: %v", err)
	}
	if !byaml.Equal(testCourse(), f.Root) {
		t.Errorf("imported tree differs from the original")
	}

	// Existing output is not overwritten without --force
	resetFlags()
	importOutput = out
	if _, err := captureOutput(t, func() error { return runImport(importCmd, []string{yml}) }); err == nil {
		t.Error("expected refusal to overwrite")
	}
	importForce = true
	importSortKeys = true
	var logs bytes.Buffer
	logger.Init(logger.Options{Enabled: true, Level: slog.LevelDebug, Writer: &logs})
	t.Cleanup(func() { logger.Init(logger.Options{}) })
	if _, err := captureOutput(t, func() error { return runImport(importCmd, []string{yml}) }); err != nil {
		t.Fatalf("runImport --force: %v", err)
	}
	assertContains(t, logs.String(), []string{"overwriting existing file", "wrote BYAML"})
	f, err = byaml.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	keys := f.Root.(*byaml.Dictionary).Keys()
	if strings.Join(keys, ",") != "HeadLight,IsFirstLeft,LapNumber,Obj,Route" {
		t.Errorf("sorted keys = %v", keys)
	}
}

func TestExportStdout(t *testing.T) {
	src := writeTestFile(t)
	resetFlags()
	output, err := captureOutput(t, func() error { return runExport([]string{src}) })
	if err != nil {
		t.Fatalf("runExport: %v", err)
	}
	assertContains(t, output, []string{"HeadLight: ", "IsFirstLeft: true", "LapNumber: 3"})
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("a: null\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resetFlags()
	importOutput = filepath.Join(dir, "out.byaml")
	if _, err := captureOutput(t, func() error { return runImport(importCmd, []string{bad}) }); err == nil {
		t.Error("expected error for null value")
	}
	if _, err := os.Stat(importOutput); !os.IsNotExist(err) {
		t.Error("failed import left an output file")
	}

	if _, err := captureOutput(t, func() error {
		return runImport(importCmd, []string{filepath.Join(dir, "missing.yml")})
	}); err == nil {
		t.Error("expected error for missing input")
	}
}
