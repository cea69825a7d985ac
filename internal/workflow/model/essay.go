package model

type EssayGenerateInput struct {
	Topic         string
	EssayType     string
	WritingStyle  string
	CitationStyle string
	TargetLength  int

	Requirements string
	Sources      string

	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}

type EssayGenerateOutput struct {
	// RawText 模型原始输出，未做任何结构化处理
	RawText string
	Meta    LLMUsageMeta
}
