package domain

// VoicePair holds the two synthesis voices a language's dialogue is spoken
// with. The first speaker of a script gets Primary, the second Secondary.
type VoicePair struct {
	Primary   string
	Secondary string
}

// ElevenLabs voice IDs picked for conversational quality. Roger carries both
// languages; the secondary seat differs per language.
var voiceRegistry = map[string]VoicePair{
	"en": {
		Primary:   "CwhRBWXzGAHq8TQ4Fs17", // Roger
		Secondary: "21m00Tcm4TlvDq8ikWAM", // Rachel
	},
	"zh": {
		Primary:   "CwhRBWXzGAHq8TQ4Fs17", // Roger
		Secondary: "9BWtsMINqrJLrRacOk9x", // Aria
	},
}

// VoicesForLanguage returns the voice pair for a language code, falling back
// to English for unknown codes.
func VoicesForLanguage(language string) VoicePair {
	if pair, ok := voiceRegistry[language]; ok {
		return pair
	}
	return voiceRegistry["en"]
}
