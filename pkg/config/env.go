package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env 从环境变量读取的设置
// 凭据只允许来自环境，不写入 YAML
type Env struct {
	APIKey      string `env:"API_KEY"`
	HypeBaseURL string `env:"HYPE_BASE_URL"`
	HypeModel   string `env:"HYPE_MODEL"`
}

// LoadEnv 读取 .env 文件（可选）后解析环境变量
//
// envFile 为空时跳过；文件不存在不是错误。
// 已存在的环境变量优先于 .env 中的同名值。
func LoadEnv(envFile string) (Env, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Env{}, fmt.Errorf("load env file %s: %w", envFile, err)
			}
		} else {
			log.Printf("[Config] Loaded environment from %s", envFile)
		}
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ApplyEnv 用环境变量覆盖配置中的祝福语服务地址与模型
func (c *DrawConfig) ApplyEnv(e Env) {
	if v := strings.TrimSpace(e.HypeBaseURL); v != "" {
		c.Hype.BaseURL = v
	}
	if v := strings.TrimSpace(e.HypeModel); v != "" {
		c.Hype.Model = v
	}
}
