package id

import (
	"github.com/google/uuid"
)

// New 生成对话/回复 ID（UUIDv4 字符串）
func New() string {
	return uuid.New().String()
}

// IsValid 判断是否为合法的 UUID，路由参数在查库前先做一次校验
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
