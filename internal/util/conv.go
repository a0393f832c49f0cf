package util

import (
	"strconv"
)

// ParseIntOr 解析整数，失败或为空时返回 def
func ParseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
