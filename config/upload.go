package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultMaxUploadBytes = 200 * 1024 * 1024

type UploadConfig struct {
	MaxUploadBytes int64
}

func GetUploadConfig() (*UploadConfig, error) {
	maxUpload := os.Getenv("MAX_UPLOAD_BYTES")
	if maxUpload == "" {
		return &UploadConfig{MaxUploadBytes: defaultMaxUploadBytes}, nil
	}

	maxUploadVal, err := strconv.ParseInt(maxUpload, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MAX_UPLOAD_BYTES")
	}

	return &UploadConfig{MaxUploadBytes: maxUploadVal}, nil
}
