package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "minilang")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestProjectRoundTrip(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, projectFile)

	err := writeProject(path, project{Package: "hello", Entry: "main.ml", LogLevel: "DEBUG"})
	if err != nil {
		t.Fatal(err)
	}

	proj, err := loadProject(path)
	if err != nil {
		t.Fatal(err)
	}
	if proj == nil {
		t.Fatal("expected a project")
	}
	if proj.Package != "hello" || proj.LogLevel != "DEBUG" {
		t.Errorf("unexpected project %+v", proj)
	}
	if got := proj.entryPath(); got != filepath.Join(dir, "main.ml") {
		t.Errorf("entry resolved to %s", got)
	}
}

func TestMissingProject(t *testing.T) {
	proj, err := loadProject(filepath.Join(tempDir(t), projectFile))
	if err != nil {
		t.Fatal(err)
	}
	if proj != nil {
		t.Errorf("expected no project, got %+v", proj)
	}
}

func TestMalformedProject(t *testing.T) {
	path := filepath.Join(tempDir(t), projectFile)
	if err := ioutil.WriteFile(path, []byte("Package: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProject(path); err == nil {
		t.Error("expected a yaml error")
	}
}

func TestSetLogLevel(t *testing.T) {
	if err := setLogLevel("debug", false); err != nil {
		t.Errorf("debug should parse: %v", err)
	}
	if err := setLogLevel("loud", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if err := setLogLevel("INFO", false); err != nil {
		t.Error(err)
	}
}

func TestParseSource(t *testing.T) {
	program, err := parseSource("var x = 1; print(x);")
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 2 {
		t.Errorf("expected 2 statements, got %d", len(program))
	}
	if _, err := parseSource("var = 1;"); err == nil {
		t.Error("expected a parse error")
	}
}
