package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Supported language codes
const (
	Chinese = "zh"
	English = "en"
)

// Info is the detection report returned by Detector.Info
type Info struct {
	DetectedLanguage string  `json:"detected_language"`
	IsMixedLanguage  bool    `json:"is_mixed_language"`
	ChineseChars     int     `json:"chinese_chars"`
	EnglishChars     int     `json:"english_chars"`
	TotalChars       int     `json:"total_chars"`
	ChineseRatio     float64 `json:"chinese_ratio"`
	EnglishRatio     float64 `json:"english_ratio"`
	Script           string  `json:"script,omitempty"`
	ScriptConfidence float64 `json:"script_confidence"`
}

type rule struct {
	patterns []func(rune) bool
	keywords []string
}

var whatLangOpts = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Cmn: true,
	},
}

// Detector scores raw text against per-language feature rules.
// Stateless and safe for concurrent use.
type Detector struct {
	defaultLanguage string
	rules           map[string]rule
}

func NewDetector(defaultLanguage string) *Detector {
	if defaultLanguage != Chinese && defaultLanguage != English {
		defaultLanguage = Chinese
	}
	return &Detector{
		defaultLanguage: defaultLanguage,
		rules: map[string]rule{
			Chinese: {
				patterns: []func(rune) bool{
					isCJKIdeograph,
					isChinesePunct,
				},
				keywords: []string{"的", "是", "在", "有", "和", "与", "或", "但", "而", "因为", "所以"},
			},
			English: {
				patterns: []func(rune) bool{
					isLatinLetter,
					isEnglishPunct,
				},
				keywords: []string{"the", "is", "are", "in", "on", "at", "and", "or", "but", "because", "so"},
			},
		},
	}
}

// Detect returns "zh" or "en" for the given text.
// Score = pattern matches + 2 per keyword hit; ties break to zh when
// any CJK ideograph is present, else en. Blank input yields the default.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return d.defaultLanguage
	}

	lower := strings.ToLower(text)
	scores := make(map[string]int, len(d.rules))
	for lang, r := range d.rules {
		score := 0
		for _, match := range r.patterns {
			for _, ch := range text {
				if match(ch) {
					score++
				}
			}
		}
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				score += 2
			}
		}
		scores[lang] = score
	}

	switch {
	case scores[Chinese] > scores[English]:
		return Chinese
	case scores[English] > scores[Chinese]:
		return English
	default:
		if countRunes(text, isCJKIdeograph) > 0 {
			return Chinese
		}
		return English
	}
}

// IsMixed reports whether both CJK and Latin character ratios over the
// total rune length fall within [0.2, 0.8].
func (d *Detector) IsMixed(text string) bool {
	chinese := countRunes(text, isCJKIdeograph)
	english := countRunes(text, isLatinLetter)
	if chinese == 0 || english == 0 {
		return false
	}

	total := len([]rune(text))
	chineseRatio := float64(chinese) / float64(total)
	englishRatio := float64(english) / float64(total)

	return chineseRatio >= 0.2 && chineseRatio <= 0.8 &&
		englishRatio >= 0.2 && englishRatio <= 0.8
}

// Info builds the full detection report, including a secondary script
// hint from whatlanggo.
func (d *Detector) Info(text string) Info {
	chinese := countRunes(text, isCJKIdeograph)
	english := countRunes(text, isLatinLetter)
	total := len([]rune(text))

	info := Info{
		DetectedLanguage: d.Detect(text),
		IsMixedLanguage:  d.IsMixed(text),
		ChineseChars:     chinese,
		EnglishChars:     english,
		TotalChars:       total,
	}
	if total > 0 {
		info.ChineseRatio = float64(chinese) / float64(total)
		info.EnglishRatio = float64(english) / float64(total)
	}

	if strings.TrimSpace(text) != "" {
		wl := whatlanggo.DetectWithOptions(text, whatLangOpts)
		info.Script = whatlanggo.Scripts[wl.Script]
		info.ScriptConfidence = wl.Confidence
	}

	return info
}

// Validate reports whether the given code is a supported language.
func (d *Detector) Validate(lang string) bool {
	return lang == Chinese || lang == English
}

// Default returns the configured fallback language.
func (d *Detector) Default() string {
	return d.defaultLanguage
}

func countRunes(text string, match func(rune) bool) int {
	n := 0
	for _, ch := range text {
		if match(ch) {
			n++
		}
	}
	return n
}

func isCJKIdeograph(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isChinesePunct(r rune) bool {
	return strings.ContainsRune("，。！？；：“”‘’（）【】", r)
}

func isEnglishPunct(r rune) bool {
	return r < unicode.MaxASCII && strings.ContainsRune(",.!?;:()[]", r)
}
