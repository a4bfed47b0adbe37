package dto

type DetectLanguageRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type DetectLanguageResponse struct {
	DetectedLanguage string  `json:"detected_language"`
	IsMixedLanguage  bool    `json:"is_mixed_language"`
	ChineseChars     int     `json:"chinese_chars"`
	EnglishChars     int     `json:"english_chars"`
	TotalChars       int     `json:"total_chars"`
	ChineseRatio     float64 `json:"chinese_ratio"`
	EnglishRatio     float64 `json:"english_ratio"`
	Script           string  `json:"script,omitempty"`
	ScriptConfidence float64 `json:"script_confidence,omitempty"`
}
