package config

import (
	"os"
)

type YouTubeConfig struct {
	BinaryPath string
	TempDir    string
}

func GetYouTubeConfig() (*YouTubeConfig, error) {
	binaryPath := os.Getenv("YTDLP_PATH")
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}

	tempDir := os.Getenv("YTDLP_TEMP_DIR")
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &YouTubeConfig{
		BinaryPath: binaryPath,
		TempDir:    tempDir,
	}, nil
}
