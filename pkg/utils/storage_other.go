//go:build !android

package utils

// 桌面和 iOS 上 gdata 自己决定并创建存储目录

func EnsureStorageDir() error { return nil }

func GetStoragePath() string { return "" }
