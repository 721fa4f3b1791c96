package systems

import "github.com/decker502/grow/pkg/components"

// WaterPool 共享水量
//
// 实现 WaterHook：每种下一段藤蔓消耗 1 单位水，水量为 0 时拒绝种植。
// 新藤蔓四邻域内的水源格子会把自身 Amount 加入水量，每个水源每局只收集一次。
// 已收集的水源记录在水池内，网格本身不被修改（关卡保存时水源保持原样）。
// 回退擦除不返还水量。
type WaterPool struct {
	remaining int
	collected map[[2]int]bool
}

// NewWaterPool 创建水池
//
// 参数：
//   - initial: 初始水量
func NewWaterPool(initial int) *WaterPool {
	return &WaterPool{
		remaining: initial,
		collected: make(map[[2]int]bool),
	}
}

// Remaining 返回剩余水量
func (p *WaterPool) Remaining() int {
	return p.remaining
}

// Reset 重置水量并清空已收集的水源记录（重新开始关卡时调用）
func (p *WaterPool) Reset(initial int) {
	p.remaining = initial
	p.collected = make(map[[2]int]bool)
}

// CanPlant 水量大于 0 时允许种植
func (p *WaterPool) CanPlant(_ *components.Grid, _, _ int) bool {
	return p.remaining > 0
}

// OnPlanted 扣除 1 单位水，并收集相邻的水源
func (p *WaterPool) OnPlanted(g *components.Grid, x, y int) {
	p.remaining--
	for _, o := range offsets4 {
		nx, ny := x+o[0], y+o[1]
		w, ok := g.Get(nx, ny).(components.WaterCell)
		if !ok {
			continue
		}
		key := [2]int{nx, ny}
		if p.collected[key] {
			continue
		}
		p.collected[key] = true
		p.remaining += w.Amount
	}
}
