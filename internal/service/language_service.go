package service

import (
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/pkg/language"
)

type ILanguageService interface {
	Detect(text string) *dto.DetectLanguageResponse
}

type languageService struct {
	detector *language.Detector
}

func NewLanguageService(detector *language.Detector) ILanguageService {
	return &languageService{detector: detector}
}

func (s *languageService) Detect(text string) *dto.DetectLanguageResponse {
	info := s.detector.Info(text)
	return &dto.DetectLanguageResponse{
		DetectedLanguage: info.DetectedLanguage,
		IsMixedLanguage:  info.IsMixedLanguage,
		ChineseChars:     info.ChineseChars,
		EnglishChars:     info.EnglishChars,
		TotalChars:       info.TotalChars,
		ChineseRatio:     info.ChineseRatio,
		EnglishRatio:     info.EnglishRatio,
		Script:           info.Script,
		ScriptConfidence: info.ScriptConfidence,
	}
}
