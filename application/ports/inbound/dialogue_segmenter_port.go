package inbound

import "github.com/StudyXTeam23/aipodcast/domain"

// DialogueSegmenterPort splits a speaker-tagged script into ordered,
// voice-assigned speaker turns. Pure, no I/O.
type DialogueSegmenterPort interface {
	Segment(script string, language string) []domain.DialogueSegment
}
