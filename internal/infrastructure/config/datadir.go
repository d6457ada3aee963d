package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir 数据目录环境变量名
	EnvDataDir = "SUMMARYDESK_DATA_DIR"
	// DefaultDataDirName 默认数据目录名
	DefaultDataDirName = ".summarydesk"
	// DefaultConfigFileName 默认配置文件名
	DefaultConfigFileName = "config.yaml"
	// DefaultDatabaseFileName 默认 SQLite 数据库文件名
	DefaultDatabaseFileName = "summarydesk.db"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir 获取数据根目录
// 优先读取 SUMMARYDESK_DATA_DIR 环境变量，默认 ~/.summarydesk/
func GetDataDir() string {
	dataDirOnce.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			dataDirPath = dir
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			dataDirPath = DefaultDataDirName
			return
		}
		dataDirPath = filepath.Join(homeDir, DefaultDataDirName)
	})
	return dataDirPath
}

// ResetDataDir 重置数据目录缓存（仅用于测试）
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
