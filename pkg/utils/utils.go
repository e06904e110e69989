package utils

import (
	"path"
	"strings"
	"unicode"
)

// SanitizeName converts a name to printable ASCII, mapping accented Latin
// letters to their base letter and replacing everything else with a hyphen.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(name))

	for _, r := range name {
		if r < 128 && unicode.IsPrint(r) {
			result.WriteRune(r)
			continue
		}

		switch {
		case unicode.Is(unicode.Latin, r):
			switch {
			case r >= 'À' && r <= 'Å':
				result.WriteRune('A')
			case r >= 'à' && r <= 'å':
				result.WriteRune('a')
			case r >= 'È' && r <= 'Ë':
				result.WriteRune('E')
			case r >= 'è' && r <= 'ë':
				result.WriteRune('e')
			case r >= 'Ì' && r <= 'Ï':
				result.WriteRune('I')
			case r >= 'ì' && r <= 'ï':
				result.WriteRune('i')
			case r >= 'Ò' && r <= 'Ö':
				result.WriteRune('O')
			case r >= 'ò' && r <= 'ö':
				result.WriteRune('o')
			case r >= 'Ù' && r <= 'Ü':
				result.WriteRune('U')
			case r >= 'ù' && r <= 'ü':
				result.WriteRune('u')
			case r == 'Ç':
				result.WriteRune('C')
			case r == 'ç':
				result.WriteRune('c')
			case r == 'Ñ':
				result.WriteRune('N')
			case r == 'ñ':
				result.WriteRune('n')
			default:
				result.WriteRune('-')
			}
		default:
			result.WriteRune('-')
		}
	}

	return result.String()
}

// PublicIDFromFilename derives a media public ID from an uploaded file name:
// the extension is dropped, the rest is sanitized to ASCII, lowercased, and
// spaces collapse to hyphens. Returns "" when nothing usable remains.
func PublicIDFromFilename(filename string) string {
	base := path.Base(filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = SanitizeName(base)
	base = strings.ToLower(base)

	var result strings.Builder
	result.Grow(len(base))
	lastHyphen := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			result.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && result.Len() > 0 {
				result.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(result.String(), "-")
}
