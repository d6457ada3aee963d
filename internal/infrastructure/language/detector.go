package language

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// 过短的文本无法可靠识别
const minDetectRunes = 12

// isoCodes lingua 语言到 ISO 639-1 代码
var isoCodes = map[lingua.Language]string{
	lingua.Spanish:    "es",
	lingua.English:    "en",
	lingua.Portuguese: "pt",
	lingua.French:     "fr",
	lingua.German:     "de",
	lingua.Italian:    "it",
	lingua.Catalan:    "ca",
}

// Detector 基于 lingua 的语言识别
// 语言模型加载较慢，首次调用时才构建
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewDetector 创建语言识别器
func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) get() lingua.LanguageDetector {
	d.once.Do(func() {
		languages := make([]lingua.Language, 0, len(isoCodes))
		for lang := range isoCodes {
			languages = append(languages, lang)
		}
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			WithMinimumRelativeDistance(0.25).
			Build()
	})
	return d.detector
}

// Detect 返回文本的 ISO 639-1 语言代码，无法识别时返回空字符串
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minDetectRunes {
		return ""
	}
	lang, ok := d.get().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return isoCodes[lang]
}
