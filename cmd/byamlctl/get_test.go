package main

import (
	"strings"
	"testing"
)

func TestGetCommand(t *testing.T) {
	path := writeTestFile(t)

	tests := []struct {
		name     string
		nodePath string
		vector   bool
		json     bool
		want     string
		wantErr  bool
	}{
		{name: "int", nodePath: "LapNumber", want: "3\n"},
		{name: "string", nodePath: "Obj/0/UnitIdName", want: "ItemBox\n"},
		{name: "bool", nodePath: "IsFirstLeft", want: "true\n"},
		{name: "container", nodePath: "Obj/0/Translate", want: "Dictionary {3}\n  X: Float 10\n"},
		{name: "vector", nodePath: "Obj/0/Translate", vector: true, want: "(10, 0, -20)\n"},
		{name: "vector json", nodePath: "Obj/0/Translate", vector: true, json: true, want: `"z": -20`},
		{name: "json", nodePath: "Obj/0/ObjId", json: true, want: "1018\n"},
		{name: "path points", nodePath: "Route", want: "Path (2 points)\n  [0]: pos=(1, 2, 3)"},
		{name: "missing key", nodePath: "Missing", wantErr: true},
		{name: "index out of range", nodePath: "Obj/3", wantErr: true},
		{name: "vector of scalar", nodePath: "LapNumber", vector: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			getVector = tt.vector
			jsonOut = tt.json

			output, err := captureOutput(t, func() error { return runGet([]string{path, tt.nodePath}) })
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output %q", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("runGet: %v", err)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("output %q does not contain %q", output, tt.want)
			}
		})
	}
}
