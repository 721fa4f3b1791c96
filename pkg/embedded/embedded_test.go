package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func withFS(t *testing.T, files fstest.MapFS) {
	t.Helper()
	Init(files)
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestNotInitialized 测试未初始化时所有访问都失败
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/levels/a.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile error = %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("data/levels/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/levels/a.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

// TestReadAndGlob 测试读取和匹配
func TestReadAndGlob(t *testing.T) {
	withFS(t, fstest.MapFS{
		"data/levels/02-b.yaml": {Data: []byte("b")},
		"data/levels/01-a.yaml": {Data: []byte("a")},
		"data/readme.txt":       {Data: []byte("x")},
	})

	data, err := ReadFile("./data/levels/01-a.yaml")
	if err != nil || string(data) != "a" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
	if !Exists("data/readme.txt") || Exists("data/missing.txt") {
		t.Error("Exists returned wrong result")
	}

	matches, err := Glob("data/levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 2 || matches[0] != "data/levels/01-a.yaml" {
		t.Errorf("Glob = %v", matches)
	}
}

// TestInvalidPrefix 测试非 data/ 路径被拒绝
func TestInvalidPrefix(t *testing.T) {
	withFS(t, fstest.MapFS{})

	for _, p := range []string{"assets/x.png", "levels/a.yaml", "/data/a"} {
		if _, err := ReadFile(p); err == nil {
			t.Errorf("ReadFile(%q) should fail", p)
		}
	}
}
