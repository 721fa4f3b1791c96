package systems

import (
	"fmt"
	"strconv"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// WatcherReference 观察者比较的基准
type WatcherReference int

const (
	// ReferenceZero 将带符号计数与 0 比较（默认，Exactly 即"计数归零"）
	ReferenceZero WatcherReference = iota
	// ReferenceAmount 将带符号计数与观察者的 Amount 比较
	ReferenceAmount
)

// String 返回基准的字符串表示（用于设置文件）
func (r WatcherReference) String() string {
	switch r {
	case ReferenceZero:
		return "zero"
	case ReferenceAmount:
		return "amount"
	default:
		return fmt.Sprintf("WatcherReference(%d)", int(r))
	}
}

// ParseWatcherReference 解析设置文件中的基准名称，未知名称返回 ReferenceZero 和 false
func ParseWatcherReference(s string) (WatcherReference, bool) {
	switch s {
	case "zero", "":
		return ReferenceZero, true
	case "amount":
		return ReferenceAmount, true
	default:
		return ReferenceZero, false
	}
}

// WatcherRule 观察者满足条件的判定规则
//
// Exactly 使用 ==，MoreThan 使用 >，LessThan 使用 <，
// 左边是带符号计数，右边由 Reference 决定。
type WatcherRule struct {
	Reference WatcherReference
}

// DefaultWatcherRule 默认规则：与 0 比较
func DefaultWatcherRule() WatcherRule {
	return WatcherRule{Reference: ReferenceZero}
}

// Satisfied 判断观察者是否满足
func (r WatcherRule) Satisfied(w components.WatcherCell, count int) bool {
	rhs := 0
	if r.Reference == ReferenceAmount {
		rhs = w.Amount
	}
	switch w.Criteria {
	case components.CriteriaMoreThan:
		return count > rhs
	case components.CriteriaLessThan:
		return count < rhs
	default:
		return count == rhs
	}
}

// WatcherResult 单个观察者的计算结果
type WatcherResult struct {
	X, Y      int
	Color     types.Color
	Criteria  components.Criteria
	Count     int  // 带符号计数：Amount - 同色藤蔓数 + 异色藤蔓数
	Satisfied bool // 按 WatcherRule 判定是否满足
}

// Label 返回显示用的标签（带符号的十进制计数）
func (r WatcherResult) Label() string {
	return strconv.Itoa(r.Count)
}

// WatcherCount 计算观察者在 (x,y) 处的带符号计数
//
// 从 Amount 开始，周围 8 格中每个同色藤蔓减 1，每个异色藤蔓加 1，
// 空格子、越界和非藤蔓格子不计。每次调用都重新扫描，不做缓存。
func WatcherCount(g *components.Grid, x, y int, w components.WatcherCell) int {
	count := w.Amount
	for _, c := range Neighbors8(g, x, y) {
		v, ok := components.AsVine(c)
		if !ok {
			continue
		}
		if v.Color == w.Color {
			count--
		} else {
			count++
		}
	}
	return count
}

// EvaluateWatcher 计算 (x,y) 处观察者的结果
//
// 返回：
//   - WatcherResult: 计算结果
//   - bool: (x,y) 不是观察者时返回 false
func EvaluateWatcher(g *components.Grid, x, y int, rule WatcherRule) (WatcherResult, bool) {
	w, ok := components.AsWatcher(g.Get(x, y))
	if !ok {
		return WatcherResult{}, false
	}
	count := WatcherCount(g, x, y, w)
	return WatcherResult{
		X:         x,
		Y:         y,
		Color:     w.Color,
		Criteria:  w.Criteria,
		Count:     count,
		Satisfied: rule.Satisfied(w, count),
	}, true
}

// EvaluateAll 按列优先顺序计算网格中所有观察者
func EvaluateAll(g *components.Grid, rule WatcherRule) []WatcherResult {
	var results []WatcherResult
	g.Each(func(x, y int, c components.Cell) {
		if c == nil || c.Kind() != components.CellWatcher {
			return
		}
		if r, ok := EvaluateWatcher(g, x, y, rule); ok {
			results = append(results, r)
		}
	})
	return results
}

// AllSatisfied 判断所有观察者是否都已满足（即谜题完成）
// 没有观察者的关卡永远不算完成
func AllSatisfied(results []WatcherResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.Satisfied {
			return false
		}
	}
	return true
}
