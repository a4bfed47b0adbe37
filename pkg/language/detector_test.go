package language

import (
	"testing"
)

func TestDetect(t *testing.T) {
	d := NewDetector(Chinese)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"pure chinese", "你好谢谢", Chinese},
		{"pure english", "Hello thanks", English},
		{"chinese with punctuation", "这个商品多少钱？", Chinese},
		{"english sentence", "What is the shipping policy?", English},
		{"empty defaults to zh", "", Chinese},
		{"whitespace defaults to zh", "   \t\n", Chinese},
		{"tie with cjk breaks to zh", "你", Chinese},
		{"no features at all", "Привет", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector(Chinese)
	for i := 0; i < 50; i++ {
		if got := d.Detect("你好谢谢"); got != Chinese {
			t.Fatalf("iteration %d: Detect(你好谢谢) = %q, want zh", i, got)
		}
		if got := d.Detect("Hello thanks"); got != English {
			t.Fatalf("iteration %d: Detect(Hello thanks) = %q, want en", i, got)
		}
	}
}

func TestDetectDefaultLanguage(t *testing.T) {
	if got := NewDetector(English).Detect(""); got != English {
		t.Errorf("Detect(\"\") with en default = %q, want en", got)
	}
	// Invalid default falls back to zh
	if got := NewDetector("fr").Detect(""); got != Chinese {
		t.Errorf("Detect(\"\") with invalid default = %q, want zh", got)
	}
}

func TestIsMixed(t *testing.T) {
	d := NewDetector(Chinese)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"balanced mix", "你好hello世界world", true},
		{"pure chinese", "你好世界", false},
		{"pure english", "hello world", false},
		{"empty", "", false},
		{"one cjk in long english", "a你aaaaaaaaaaaaaaaaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsMixed(tt.text); got != tt.want {
				t.Errorf("IsMixed(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	d := NewDetector(Chinese)

	info := d.Info("你好hello世界world")
	if info.DetectedLanguage == "" {
		t.Fatal("expected a detected language")
	}
	if info.ChineseChars != 4 {
		t.Errorf("ChineseChars = %d, want 4", info.ChineseChars)
	}
	if info.EnglishChars != 10 {
		t.Errorf("EnglishChars = %d, want 10", info.EnglishChars)
	}
	if info.TotalChars != 14 {
		t.Errorf("TotalChars = %d, want 14", info.TotalChars)
	}
	if !info.IsMixedLanguage {
		t.Error("expected mixed language")
	}
	if info.ChineseRatio <= 0 || info.EnglishRatio <= 0 {
		t.Error("expected positive ratios")
	}

	empty := d.Info("")
	if empty.TotalChars != 0 || empty.ChineseRatio != 0 {
		t.Errorf("empty text report should be zeroed, got %+v", empty)
	}
}

func TestValidate(t *testing.T) {
	d := NewDetector(Chinese)
	if !d.Validate("zh") || !d.Validate("en") {
		t.Error("zh and en must validate")
	}
	if d.Validate("fr") || d.Validate("") {
		t.Error("unsupported codes must not validate")
	}
}
