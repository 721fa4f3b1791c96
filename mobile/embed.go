//go:build mobile

package mobile

import "embed"

// dataFS 需要先把根目录的 data 复制到 mobile/ 下，go:embed 不能引用上级目录
//
//go:embed data/levels
var dataFS embed.FS
