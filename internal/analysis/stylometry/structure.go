package stylometry

import (
	"regexp"
	"strings"
)

var (
	bulletLineRe   = regexp.MustCompile(`^\s*[-*•]\s+`)
	numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	headerLineRe   = regexp.MustCompile(`^\s*#{1,6}\s+`)
	emphasisRe     = regexp.MustCompile(`\*\*|__|\*[^*\s][^*]*\*`)
)

// computeStructure measures formatting density over the raw (uncleaned)
// texts, since formatting lives in the markup the cleaner strips.
func (f *Features) computeStructure(texts []string) {
	var lines, bullets, numbered, headers int
	var emphasis int

	for _, t := range texts {
		emphasis += len(emphasisRe.FindAllString(t, -1))
		for _, line := range strings.Split(t, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines++
			switch {
			case bulletLineRe.MatchString(line):
				bullets++
			case numberedLineRe.MatchString(line):
				numbered++
			case headerLineRe.MatchString(line):
				headers++
			}
		}
	}

	if lines > 0 {
		f.BulletRatio = float64(bullets) / float64(lines)
		f.NumberedRatio = float64(numbered) / float64(lines)
		f.HeaderRatio = float64(headers) / float64(lines)
	}
	if f.WordCount > 0 {
		f.EmphasisDensity = float64(emphasis) / float64(f.WordCount) * 100
	}
}

// emojiDensity is the average emoji count per text item.
func emojiDensity(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	var emojis int
	for _, t := range texts {
		for _, r := range t {
			if isEmoji(r) {
				emojis++
			}
		}
	}
	return float64(emojis) / float64(len(texts))
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // symbols, pictographs, supplemental
		return true
	case r >= 0x1F000 && r <= 0x1F2FF: // mahjong, dominoes, enclosed
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r == 0x2764: // heavy heart
		return true
	}
	return false
}

// EmojiOnly reports whether the text contains emoji and no letters or digits.
func EmojiOnly(text string) bool {
	hasEmoji := false
	for _, r := range text {
		switch {
		case isEmoji(r):
			hasEmoji = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		}
	}
	return hasEmoji
}
