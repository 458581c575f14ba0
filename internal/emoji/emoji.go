package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"success":   {"✅", "[OK]"},
	"radar":     {"📡", "[RR]"},
	"real":      {"🟢", "[REAL]"},
	"fake":      {"🔴", "[FAKE]"},
	"star":      {"⭐", "*"},
	"link":      {"🔗", "[URL]"},
	"pencil":    {"✏️", "[TXT]"},
	"chart":     {"📊", "[CHART]"},
	"threshold": {"⚖️", "[THR]"},
	"history":   {"🕘", "[HIST]"},
	"file":      {"📄", "[FILE]"},
	"folder":    {"📁", "[DIR]"},
	"eye":       {"👀", "[WATCH]"},
	"clear":     {"🧹", "[CLR]"},
	"help":      {"❓", "[?]"},
	"door":      {"🚪", "[EXIT]"},
	"number":    {"🔢", "[#]"},
	"tip":       {"💡", "[TIP]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	mapping, exists := emojiMap[key]
	if !exists {
		return "[?]"
	}
	if IsEmojiDisabled() {
		return mapping[1]
	}
	return mapping[0]
}

// Verdict returns the marker for a real or fake classification
func Verdict(genuine bool) string {
	if genuine {
		return GetEmoji("real")
	}
	return GetEmoji("fake")
}
