package utils

import (
	"path/filepath"
	"strings"
)

// safeRunes 保留安全字符，其余统一替换为下划线
var safeRunes = func(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.' || r == '_' || r == '-':
		return r
	default:
		return '_'
	}
}

// SanitizeFilename 清洗上传文件名
// 去掉路径部分，替换不安全字符；清洗后为空或全是点则返回空串
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	name = strings.Map(safeRunes, name)
	if strings.Trim(name, "._-") == "" {
		return ""
	}

	return name
}
