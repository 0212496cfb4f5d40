package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path: %v", err)
	}

	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink: %v", err)
	}
	realGotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve log dir symlink: %v", err)
	}
	if wantDir := filepath.Join(realTmpDir, defaultLogDirName); realGotDir != wantDir {
		t.Fatalf("log dir: got %s want %s", realGotDir, wantDir)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("log filename: got %s want %s", filepath.Base(got), defaultLogFilename)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Fatalf("log dir should exist after resolve: %v", err)
	}
}

func TestReleaseModeWritesStructuredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{
		Dir:      tmpDir,
		Filename: "storefront.log",
	})
	log.Sugar().Infow("order_created", "order_no", "PK20260830120000123456", "total", "210.00")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "storefront.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, `"message":"order_created"`) {
		t.Fatalf("expected structured message key, got %s", line)
	}
	if !strings.Contains(line, "PK20260830120000123456") {
		t.Fatalf("expected bound field in output, got %s", line)
	}
}

func TestDebugModeSkipsLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tmpDir,
		Filename: "storefront.log",
	})
	log.Debug("cart_item_added")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "storefront.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should log to stdout only")
	}
}

func TestSugaredHelpersUsableBeforeInit(t *testing.T) {
	prev := L
	L = nil
	t.Cleanup(func() { L = prev })

	if Z() == nil {
		t.Fatal("Z should fall back to a usable logger")
	}
	if S() == nil {
		t.Fatal("S should fall back to a usable logger")
	}
	if SW("request_id", "req-123") == nil {
		t.Fatal("SW should bind fields on the fallback logger")
	}
}
