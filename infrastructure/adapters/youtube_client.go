package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/google/uuid"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of any of the common
// YouTube URL shapes, or returns an empty string.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

type youtubeClient struct {
	logger        outbound.LoggerPort
	analyzer      outbound.MediaAnalyzerPort
	youtubeConfig *config.YouTubeConfig
}

// NewYouTubeClient fetches video metadata through the analysis capability
// (no media download needed) and shells out to yt-dlp for captions and
// audio extraction.
func NewYouTubeClient(analyzer outbound.MediaAnalyzerPort, youtubeConfig *config.YouTubeConfig, logger outbound.LoggerPort) outbound.VideoSourcePort {
	return &youtubeClient{
		logger:        logger,
		analyzer:      analyzer,
		youtubeConfig: youtubeConfig,
	}
}

func (y *youtubeClient) GetMetadata(ctx context.Context, url string) (domain.VideoMetadata, error) {
	prompt := `Analyze this YouTube video and extract metadata in JSON format.

Please provide:
1. Video title
2. Brief description (1-2 sentences)
3. Estimated duration in seconds
4. Channel/uploader name

Return ONLY valid JSON with this exact structure:
{
  "title": "video title here",
  "description": "brief description",
  "duration": 300,
  "uploader": "channel name"
}

CRITICAL: Return ONLY the JSON, no markdown code blocks, no extra text.`

	raw, err := y.analyzer.AnalyzeByReference(ctx, prompt, url, "video/mp4")
	if err != nil {
		return domain.VideoMetadata{}, fmt.Errorf("fetch video metadata: %w", err)
	}

	var metadata domain.VideoMetadata
	if err := json.Unmarshal([]byte(stripFences(raw)), &metadata); err != nil {
		y.logger.ErrorWithFields(err, "Failed to parse video metadata response", map[string]interface{}{
			"url": url,
		})
		return domain.VideoMetadata{}, fmt.Errorf("parse video metadata: %w", err)
	}

	metadata.VideoID = ExtractVideoID(url)
	if metadata.VideoID == "" {
		metadata.VideoID = "unknown"
	}
	return metadata, nil
}

// GetCaptions downloads native or auto-generated captions. Absence of
// captions is not an error: the caller falls back to audio extraction.
func (y *youtubeClient) GetCaptions(ctx context.Context, url string, languageHint string) (string, error) {
	base := filepath.Join(y.youtubeConfig.TempDir, uuid.NewString())
	defer y.cleanupTempFiles(base)

	langs := "en"
	if languageHint != "" && languageHint != "en" {
		langs = languageHint + ",en"
	}

	cmd := exec.CommandContext(ctx, y.youtubeConfig.BinaryPath,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", langs,
		"--convert-subs", "srt",
		"-o", base+".%(ext)s",
		url,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		y.logger.WarnWithFields("Caption download failed", map[string]interface{}{
			"url":    url,
			"output": truncateOutput(out),
		})
		return "", nil
	}

	matches, err := filepath.Glob(base + "*.srt")
	if err != nil || len(matches) == 0 {
		return "", nil
	}

	subtitles, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("read caption file: %w", err)
	}

	return cleanSRT(string(subtitles)), nil
}

func (y *youtubeClient) ExtractAudio(ctx context.Context, url string) ([]byte, string, error) {
	base := filepath.Join(y.youtubeConfig.TempDir, uuid.NewString())
	defer y.cleanupTempFiles(base)

	cmd := exec.CommandContext(ctx, y.youtubeConfig.BinaryPath,
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192",
		"-o", base+".%(ext)s",
		url,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		y.logger.ErrorWithFields(err, "Audio extraction failed", map[string]interface{}{
			"url":    url,
			"output": truncateOutput(out),
		})
		return nil, "", fmt.Errorf("extract audio: %w", err)
	}

	audio, err := os.ReadFile(base + ".mp3")
	if err != nil {
		return nil, "", fmt.Errorf("read extracted audio: %w", err)
	}

	y.logger.InfoWithFields("Extracted audio from video", map[string]interface{}{
		"url":  url,
		"size": len(audio),
	})
	return audio, "mp3", nil
}

func (y *youtubeClient) cleanupTempFiles(base string) {
	matches, err := filepath.Glob(base + "*")
	if err != nil {
		return
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			y.logger.WarnWithFields("Failed to remove temp file", map[string]interface{}{
				"path": match,
			})
		}
	}
}

// cleanSRT keeps only the caption text, dropping sequence numbers and
// timestamp lines.
func cleanSRT(srt string) string {
	var textLines []string
	for _, raw := range strings.Split(srt, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.Contains(line, "-->") {
			continue
		}
		if isAllDigits(line) {
			continue
		}
		textLines = append(textLines, line)
	}
	return strings.Join(textLines, " ")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncateOutput(out []byte) string {
	const limit = 500
	if len(out) > limit {
		out = out[:limit]
	}
	return string(out)
}
