package game

import (
	"errors"
	"reflect"
	"testing"
)

func sampleDocument(t *testing.T) *LevelDocument {
	t.Helper()
	doc, err := Serialize(authoredGrid(), "sample", "two colors")
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	return doc
}

// TestLevelStoreMemory 测试降级模式（内存存储）
func TestLevelStoreMemory(t *testing.T) {
	store := NewLevelStore(nil)
	doc := sampleDocument(t)

	if store.Exists("garden") {
		t.Error("empty store should not contain garden")
	}
	if err := store.Save("garden", doc); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !store.Exists("garden") {
		t.Error("garden should exist after Save")
	}

	loaded, err := store.Load("garden")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Errorf("loaded = %+v, want %+v", loaded, doc)
	}
	if loaded == doc {
		t.Error("Load should return an independent document")
	}

	ids, _ := store.List()
	if !reflect.DeepEqual(ids, []string{"garden"}) {
		t.Errorf("List = %v, want [garden]", ids)
	}

	if err := store.Delete("garden"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Load("garden"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Load after Delete error = %v, want ErrLevelNotFound", err)
	}
}

// TestLevelStoreGdata 测试 gdata 持久化与索引
func TestLevelStoreGdata(t *testing.T) {
	manager := openTestGdata(t, "grow_test_level_store")
	doc := sampleDocument(t)

	store := NewLevelStore(manager)
	for _, id := range []string{"b-level", "a_level"} {
		if err := store.Save(id, doc); err != nil {
			t.Fatalf("Save(%s) error: %v", id, err)
		}
	}
	// 重复保存不产生重复索引
	if err := store.Save("a_level", doc); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reopened := NewLevelStore(manager)
	ids, err := reopened.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"a_level", "b-level"}) {
		t.Errorf("List = %v, want [a_level b-level]", ids)
	}

	loaded, err := reopened.Load("b-level")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	level, err := Deserialize(loaded)
	if err != nil {
		t.Fatalf("Deserialize stored document error: %v", err)
	}
	if !reflect.DeepEqual(level.Grid, authoredGrid()) {
		t.Error("stored level does not match the original grid")
	}

	if err := reopened.Delete("b-level"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if reopened.Exists("b-level") {
		t.Error("b-level should be gone after Delete")
	}
	ids, _ = reopened.List()
	if !reflect.DeepEqual(ids, []string{"a_level"}) {
		t.Errorf("List after Delete = %v, want [a_level]", ids)
	}
}

// TestLevelStoreInvalidID 测试非法关卡ID
func TestLevelStoreInvalidID(t *testing.T) {
	store := NewLevelStore(nil)
	doc := sampleDocument(t)

	for _, id := range []string{"", "Upper", "has space", "../escape", "x/y"} {
		if err := store.Save(id, doc); err == nil {
			t.Errorf("Save(%q) should fail", id)
		}
		if store.Exists(id) {
			t.Errorf("Exists(%q) should be false", id)
		}
	}
	if err := store.Save("ok", nil); err == nil {
		t.Error("Save(nil document) should fail")
	}
}
