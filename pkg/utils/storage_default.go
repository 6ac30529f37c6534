//go:build !android

package utils

// EnsureStorageDir 桌面与浏览器平台由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}
