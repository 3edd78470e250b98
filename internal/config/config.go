// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ZSC714725/encodequeue/internal/queue"
)

// Config 应用配置
type Config struct {
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Preflight PreflightConfig `yaml:"preflight"`
	Lock      LockConfig      `yaml:"lock"`
	Log       LogConfig       `yaml:"log"`
}

// FFmpegConfig FFmpeg 配置
type FFmpegConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig 新任务的默认编码参数
type DefaultsConfig struct {
	VideoCodec     string   `yaml:"video_codec"`
	Container      string   `yaml:"container"`
	ExtraVideoArgs []string `yaml:"extra_video_args"`
	AudioCodec     string   `yaml:"audio_codec"`
	AudioBitrate   uint     `yaml:"audio_bitrate"`
}

// DiscoveryConfig 输入文件扫描配置
type DiscoveryConfig struct {
	Root  string   `yaml:"root"`
	Allow []string `yaml:"allow"`
	Block []string `yaml:"block"`
}

// PreflightConfig 编码前检查
type PreflightConfig struct {
	MinFreeMB uint64 `yaml:"min_free_mb"`
}

// LockConfig 批量编码锁文件
type LockConfig struct {
	Path string `yaml:"path"`
}

// LogConfig 日志配置
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default 返回默认配置
func Default() *Config {
	d := queue.BuiltinDefaults()
	return &Config{
		FFmpeg: FFmpegConfig{Path: "ffmpeg"},
		Defaults: DefaultsConfig{
			VideoCodec:     d.VideoCodec,
			Container:      d.Container,
			ExtraVideoArgs: d.ExtraVideoArgs,
			AudioCodec:     d.AudioCodec,
			AudioBitrate:   d.AudioBitrate,
		},
		Discovery: DiscoveryConfig{Root: "."},
		Preflight: PreflightConfig{MinFreeMB: 1024},
		Lock:      LockConfig{Path: filepath.Join(os.TempDir(), "encodequeue.lock")},
		Log:       LogConfig{Level: "warn"},
	}
}

// Load 从 YAML 文件加载配置，文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// 填充空值
func (c *Config) fill() {
	def := Default()
	if c.FFmpeg.Path == "" {
		c.FFmpeg.Path = def.FFmpeg.Path
	}
	if strings.TrimSpace(c.Defaults.VideoCodec) == "" {
		c.Defaults.VideoCodec = def.Defaults.VideoCodec
	}
	if strings.TrimSpace(c.Defaults.Container) == "" {
		c.Defaults.Container = def.Defaults.Container
	}
	if strings.TrimSpace(c.Defaults.AudioCodec) == "" {
		c.Defaults.AudioCodec = def.Defaults.AudioCodec
	}
	if c.Defaults.AudioBitrate == 0 {
		c.Defaults.AudioBitrate = def.Defaults.AudioBitrate
	}
	if c.Discovery.Root == "" {
		c.Discovery.Root = def.Discovery.Root
	}
	if c.Lock.Path == "" {
		c.Lock.Path = def.Lock.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks values that would only fail later at runtime
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	for _, a := range c.Defaults.ExtraVideoArgs {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("defaults.extra_video_args: empty argument")
		}
	}
	return nil
}

// JobDefaults converts the defaults section for new queue entries
func (c *Config) JobDefaults() queue.Defaults {
	return queue.Defaults{
		VideoCodec:     c.Defaults.VideoCodec,
		Container:      c.Defaults.Container,
		ExtraVideoArgs: append([]string{}, c.Defaults.ExtraVideoArgs...),
		AudioCodec:     c.Defaults.AudioCodec,
		AudioBitrate:   c.Defaults.AudioBitrate,
	}
}
