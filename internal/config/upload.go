package config

import (
	"sync"
)

type UploadConfig struct {
	Dir             string
	MaxBytes        int64
	ExtractMaxBytes int64
}

var (
	uploadConfig *UploadConfig
	uploadOnce   sync.Once
)

func LoadUploadConfig() *UploadConfig {
	uploadOnce.Do(func() {
		v := Env()
		uploadConfig = &UploadConfig{
			Dir:             v.GetString("UPLOAD_DIR"),
			MaxBytes:        v.GetInt64("UPLOAD_MAX_BYTES"),
			ExtractMaxBytes: v.GetInt64("EXTRACT_MAX_BYTES"),
		}
	})
	return uploadConfig
}
