package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound 对象不存在
var ErrNotFound = errors.New("storage: object not found")

// Storage 对象存储接口，用于音频缓存等一次写入多次读取的数据
type Storage interface {
	// Put 写入对象，已存在时覆盖
	Put(ctx context.Context, key string, data io.Reader, contentType string) error

	// Get 读取对象，不存在时返回 ErrNotFound
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Type 存储类型
	Type() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)
