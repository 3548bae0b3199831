package services

import (
	"testing"

	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/stretchr/testify/require"
)

func TestDialogueSegmenter_TwoSpeakers(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "Alex: Welcome to the show.\nEmma: Thanks, glad to be here.\nAlex: Let's dive in."

	segments := segmenter.Segment(script, "en")
	require.Len(t, segments, 3)

	voices := domain.VoicesForLanguage("en")

	require.Equal(t, "Alex", segments[0].Speaker)
	require.Equal(t, "Welcome to the show.", segments[0].Text)
	require.Equal(t, voices.Primary, segments[0].VoiceID)

	require.Equal(t, "Emma", segments[1].Speaker)
	require.Equal(t, "Thanks, glad to be here.", segments[1].Text)
	require.Equal(t, voices.Secondary, segments[1].VoiceID)

	require.Equal(t, "Alex", segments[2].Speaker)
	require.Equal(t, voices.Primary, segments[2].VoiceID)

	for _, segment := range segments {
		require.NotContains(t, segment.Text, "Alex:")
		require.NotContains(t, segment.Text, "Emma:")
	}
}

func TestDialogueSegmenter_ContinuationLinesMerge(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "Alex: First thought.\nAnd a second thought.\n\nEmma: Reply."

	segments := segmenter.Segment(script, "en")
	require.Len(t, segments, 2)
	require.Equal(t, "First thought. And a second thought.", segments[0].Text)
	require.Equal(t, "Reply.", segments[1].Text)
}

func TestDialogueSegmenter_FullWidthColon(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "主持人：欢迎收听。\n嘉宾：谢谢邀请。"

	segments := segmenter.Segment(script, "zh")
	require.Len(t, segments, 2)

	voices := domain.VoicesForLanguage("zh")
	require.Equal(t, "主持人", segments[0].Speaker)
	require.Equal(t, "欢迎收听。", segments[0].Text)
	require.Equal(t, voices.Primary, segments[0].VoiceID)
	require.Equal(t, "嘉宾", segments[1].Speaker)
	require.Equal(t, voices.Secondary, segments[1].VoiceID)
}

func TestDialogueSegmenter_NoLabelsFallsBackToSingleVoice(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "  Just plain narration.\nNothing labeled here.  "

	segments := segmenter.Segment(script, "en")
	require.Len(t, segments, 1)
	require.Empty(t, segments[0].Speaker)
	require.Equal(t, "Just plain narration.\nNothing labeled here.", segments[0].Text)
	require.Equal(t, domain.VoicesForLanguage("en").Primary, segments[0].VoiceID)
}

func TestDialogueSegmenter_EmptyLabelTurnDropped(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "Alex:\nEmma: Only Emma speaks."

	segments := segmenter.Segment(script, "en")
	require.Len(t, segments, 1)
	require.Equal(t, "Emma", segments[0].Speaker)
	require.Equal(t, "Only Emma speaks.", segments[0].Text)
}

func TestDialogueSegmenter_ThirdSpeakerAlternates(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "Alex: One.\nEmma: Two.\nSam: Three.\nJordan: Four."

	segments := segmenter.Segment(script, "en")
	require.Len(t, segments, 4)

	voices := domain.VoicesForLanguage("en")
	require.Equal(t, voices.Primary, segments[0].VoiceID)
	require.Equal(t, voices.Secondary, segments[1].VoiceID)
	require.Equal(t, voices.Primary, segments[2].VoiceID)
	require.Equal(t, voices.Secondary, segments[3].VoiceID)
}

func TestDialogueSegmenter_Deterministic(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	script := "Alex: Same input.\nEmma: Same output.\nAlex: Every time."

	first := segmenter.Segment(script, "en")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, segmenter.Segment(script, "en"))
	}
}

func TestDialogueSegmenter_UnknownLanguageUsesEnglishVoices(t *testing.T) {
	segmenter := NewDialogueSegmenter()
	segments := segmenter.Segment("Alex: Hello.", "fr")
	require.Len(t, segments, 1)
	require.Equal(t, domain.VoicesForLanguage("en").Primary, segments[0].VoiceID)
}
