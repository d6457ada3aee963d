package summary

// LanguageDetector 语言识别（基础设施层实现）
type LanguageDetector interface {
	// Detect 返回 ISO 639-1 语言代码，无法识别时返回空字符串
	Detect(text string) string
}

// Recorder 业务指标记录（基础设施层实现）
type Recorder interface {
	IngestAccepted(summaries, insights int)
	IngestRejected()
	IngestFailed()
	Deleted(kind string, n int64)
}

// 删除指标的 kind 标签
const (
	deleteKindParent = "parent"
	deleteKindChild  = "child"
	deleteKindSingle = "single"
)

type noopRecorder struct{}

func (noopRecorder) IngestAccepted(int, int) {}
func (noopRecorder) IngestRejected() {}
func (noopRecorder) IngestFailed() {}
func (noopRecorder) Deleted(string, int64) {}

func recorderOrNoop(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
