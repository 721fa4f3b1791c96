package game

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	levelsObject     = "levels"
	levelIndexObject = "level_index"
	levelIndexProp   = "ids"
)

// ErrLevelNotFound 关卡未保存
var ErrLevelNotFound = errors.New("level not found")

// levelIDPattern 关卡ID只能包含小写字母、数字、下划线和短横线（用作 gdata 属性名）
var levelIDPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// LevelStore 关卡存储
//
// 把 LevelDocument 以 YAML 形式保存到 gdata（对象 "levels"，属性名为关卡ID）。
// gdataManager 为 nil 时降级为内存存储，进程退出后丢失。
// 存储只处理文档，不触碰任何正在进行的关卡状态。
type LevelStore struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
}

// NewLevelStore 创建关卡存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewLevelStore(gdataManager *gdata.Manager) *LevelStore {
	return &LevelStore{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// ValidateLevelID 检查关卡ID是否可以作为存储键
func ValidateLevelID(id string) error {
	if !levelIDPattern.MatchString(id) {
		return fmt.Errorf("invalid level id %q: use 1-64 characters of [a-z0-9_-]", id)
	}
	return nil
}

// Save 保存关卡文档
//
// 返回：
//   - error: ID 非法、编码失败或写入失败时返回错误
func (s *LevelStore) Save(id string, doc *LevelDocument) error {
	if err := ValidateLevelID(id); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("level document is nil")
	}

	data, err := MarshalDocumentYAML(doc)
	if err != nil {
		return err
	}

	if s.gdataManager == nil {
		s.memory[id] = data
		return nil
	}

	if err := s.gdataManager.SaveObjectProp(levelsObject, id, data); err != nil {
		return fmt.Errorf("failed to save level %s: %w", id, err)
	}
	if err := s.updateIndex(id, true); err != nil {
		return err
	}

	log.Printf("[LevelStore] Saved level %s (%dx%d)", id, doc.Width, doc.Height)
	return nil
}

// Load 读取关卡文档（不做版本校验，交给 Deserialize）
func (s *LevelStore) Load(id string) (*LevelDocument, error) {
	if err := ValidateLevelID(id); err != nil {
		return nil, err
	}

	var data []byte
	if s.gdataManager == nil {
		d, ok := s.memory[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
		}
		data = d
	} else {
		if !s.gdataManager.ObjectPropExists(levelsObject, id) {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
		}
		d, err := s.gdataManager.LoadObjectProp(levelsObject, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load level %s: %w", id, err)
		}
		data = d
	}

	doc, err := ParseDocumentYAML(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", id, err)
	}
	log.Printf("[LevelStore] Loaded level %s", id)
	return doc, nil
}

// Exists 判断关卡是否已保存
func (s *LevelStore) Exists(id string) bool {
	if ValidateLevelID(id) != nil {
		return false
	}
	if s.gdataManager == nil {
		_, ok := s.memory[id]
		return ok
	}
	return s.gdataManager.ObjectPropExists(levelsObject, id)
}

// Delete 删除已保存的关卡，不存在时不报错
func (s *LevelStore) Delete(id string) error {
	if err := ValidateLevelID(id); err != nil {
		return err
	}
	if s.gdataManager == nil {
		delete(s.memory, id)
		return nil
	}
	if !s.gdataManager.ObjectPropExists(levelsObject, id) {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(levelsObject, id); err != nil {
		return fmt.Errorf("failed to delete level %s: %w", id, err)
	}
	return s.updateIndex(id, false)
}

// List 返回已保存的关卡ID（按字母排序）
func (s *LevelStore) List() ([]string, error) {
	if s.gdataManager == nil {
		ids := make([]string, 0, len(s.memory))
		for id := range s.memory {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids, nil
	}
	return s.loadIndex()
}

// loadIndex 读取关卡ID索引，索引不存在时返回空列表
func (s *LevelStore) loadIndex() ([]string, error) {
	if !s.gdataManager.ObjectPropExists(levelIndexObject, levelIndexProp) {
		return nil, nil
	}
	data, err := s.gdataManager.LoadObjectProp(levelIndexObject, levelIndexProp)
	if err != nil {
		return nil, fmt.Errorf("failed to load level index: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level index: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// updateIndex 在索引中加入或移除关卡ID
func (s *LevelStore) updateIndex(id string, present bool) error {
	ids, err := s.loadIndex()
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if present {
		kept = append(kept, id)
	}
	sort.Strings(kept)

	data, err := yaml.Marshal(kept)
	if err != nil {
		return fmt.Errorf("failed to marshal level index: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(levelIndexObject, levelIndexProp, data); err != nil {
		return fmt.Errorf("failed to save level index: %w", err)
	}
	return nil
}
