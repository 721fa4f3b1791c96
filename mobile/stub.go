//go:build !mobile

// Package mobile 的桌面构建只保留导出符号，绑定代码见 mobile.go
package mobile

// Dummy 让 go build ./... 在没有 -tags mobile 时也能通过
func Dummy() {}
