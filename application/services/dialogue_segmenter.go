package services

import (
	"regexp"
	"strings"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/domain"
)

// Matches speaker labels such as "Alex:", "Host A:" or "主持人A：" — a leading
// run of Latin/CJK letters, digits and spaces followed by an ASCII or
// full-width colon, with the rest of the line as the turn's first fragment.
var speakerLabelPattern = regexp.MustCompile(`^([A-Za-z\x{4e00}-\x{9fa5}][A-Za-z\x{4e00}-\x{9fa5}\s0-9]*?)[:：]\s*(.*)$`)

type lineClassification struct {
	isLabel bool
	speaker string
	text    string
}

func classifyLine(line string) lineClassification {
	if m := speakerLabelPattern.FindStringSubmatch(line); m != nil {
		return lineClassification{
			isLabel: true,
			speaker: strings.TrimSpace(m[1]),
			text:    strings.TrimSpace(m[2]),
		}
	}
	return lineClassification{text: line}
}

type dialogueSegmenter struct{}

func NewDialogueSegmenter() inbound.DialogueSegmenterPort {
	return &dialogueSegmenter{}
}

// Segment walks the script line by line, opening a new segment whenever a
// speaker label appears and folding unlabeled lines into the open one.
// Voices are bound in first-seen speaker order: 1st speaker primary, 2nd
// secondary, further speakers alternating by parity of appearance order.
func (d *dialogueSegmenter) Segment(script string, language string) []domain.DialogueSegment {
	voices := domain.VoicesForLanguage(language)

	var (
		segments       []domain.DialogueSegment
		currentSpeaker string
		buffer         []string
		voiceBySpeaker = make(map[string]string)
		speakersSeen   int
	)

	closeSegment := func() {
		if currentSpeaker == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(buffer, " "))
		if text == "" {
			return
		}
		segments = append(segments, domain.DialogueSegment{
			Speaker: currentSpeaker,
			Text:    text,
			VoiceID: voiceBySpeaker[currentSpeaker],
		})
	}

	for _, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		cls := classifyLine(line)
		if !cls.isLabel {
			buffer = append(buffer, cls.text)
			continue
		}

		closeSegment()

		if _, known := voiceBySpeaker[cls.speaker]; !known {
			speakersSeen++
			if speakersSeen%2 == 1 {
				voiceBySpeaker[cls.speaker] = voices.Primary
			} else {
				voiceBySpeaker[cls.speaker] = voices.Secondary
			}
		}

		currentSpeaker = cls.speaker
		buffer = buffer[:0]
		if cls.text != "" {
			buffer = append(buffer, cls.text)
		}
	}
	closeSegment()

	if len(segments) == 0 {
		if text := stripLabelRemnants(script); text != "" {
			segments = append(segments, domain.DialogueSegment{
				Text:    text,
				VoiceID: voices.Primary,
			})
		}
	}

	return segments
}

// stripLabelRemnants keeps the script's text with any partial speaker-label
// prefixes removed, for the single-voice fallback.
func stripLabelRemnants(script string) string {
	var lines []string
	for _, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := speakerLabelPattern.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[2])
			if line == "" {
				continue
			}
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
