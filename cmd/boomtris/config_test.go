package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigCommandPrintsYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	flagConfig = ""
	flagDifficulty = ""

	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig: %v", err)
	}
	if !strings.Contains(buf.String(), "rows:") {
		t.Errorf("output does not look like a config:\n%s", buf.String())
	}
}

func TestConfigCommandUnknownGame(t *testing.T) {
	if err := runConfig(configCmd, []string{"tetris"}); err == nil {
		t.Error("expected an error for an unknown game")
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	flagConfig = path
	defer func() { flagConfig = "" }()

	if _, err := loadConfig(defaultGame); err == nil {
		t.Error("expected a parse error")
	}
}
