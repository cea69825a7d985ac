// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"essay-ai-api/internal/domain/entity"
)

// GenerateEssayRequest 生成作文请求
// 字段缺失与空串同等对待，校验在应用层完成。
type GenerateEssayRequest struct {
	Topic         string `json:"topic" binding:"max=500"`
	EssayType     string `json:"essayType" binding:"max=50"`
	WritingStyle  string `json:"writingStyle" binding:"max=50"`
	CitationStyle string `json:"citationStyle" binding:"max=50"`
	Length        int    `json:"length,omitempty" binding:"omitempty,gte=0,lte=20000"`
	Requirements  string `json:"requirements,omitempty" binding:"max=5000"`
	Sources       string `json:"sources,omitempty" binding:"max=10000"`
}

// EssayData 生成成功时的数据载荷
type EssayData struct {
	Content        string `json:"content"`
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
	Topic          string `json:"topic"`
	EssayType      string `json:"essayType"`
	WritingStyle   string `json:"writingStyle"`
	CitationStyle  string `json:"citationStyle"`
	EssayID        string `json:"essayId,omitempty"`
	Saved          bool   `json:"saved"`
	SaveError      string `json:"saveError,omitempty"`
}

// EssayResponse 作文详情响应
type EssayResponse struct {
	ID                 string                      `json:"id"`
	Topic              string                      `json:"topic"`
	EssayType          string                      `json:"essay_type"`
	WritingStyle       string                      `json:"writing_style"`
	CitationStyle      string                      `json:"citation_style"`
	TargetLength       int                         `json:"target_length"`
	Content            string                      `json:"content"`
	WordCount          int                         `json:"word_count"`
	CharacterCount     int                         `json:"character_count"`
	Humanized          bool                        `json:"humanized"`
	GenerationMetadata *GenerationMetadataResponse `json:"generation_metadata,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// GenerationMetadataResponse 生成元数据响应
type GenerationMetadataResponse struct {
	Model            string  `json:"model,omitempty"`
	Provider         string  `json:"provider,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	RecoveryStrategy string  `json:"recovery_strategy,omitempty"`
	GeneratedAt      string  `json:"generated_at,omitempty"`
}

// EssayListResponse 作文列表响应
type EssayListResponse struct {
	Essays []*EssayResponse `json:"essays"`
}

// ToEssayResponse 将领域实体转换为响应 DTO
func ToEssayResponse(e *entity.Essay) *EssayResponse {
	if e == nil {
		return nil
	}

	resp := &EssayResponse{
		ID:             e.ID,
		Topic:          e.Topic,
		EssayType:      e.EssayType,
		WritingStyle:   e.WritingStyle,
		CitationStyle:  e.CitationStyle,
		TargetLength:   e.TargetLength,
		Content:        e.Content,
		WordCount:      e.WordCount,
		CharacterCount: e.CharacterCount,
		Humanized:      e.Humanized,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}

	if e.GenerationMetadata != nil {
		resp.GenerationMetadata = &GenerationMetadataResponse{
			Model:            e.GenerationMetadata.Model,
			Provider:         e.GenerationMetadata.Provider,
			PromptTokens:     e.GenerationMetadata.PromptTokens,
			CompletionTokens: e.GenerationMetadata.CompletionTokens,
			Temperature:      e.GenerationMetadata.Temperature,
			RecoveryStrategy: e.GenerationMetadata.RecoveryStrategy,
			GeneratedAt:      e.GenerationMetadata.GeneratedAt,
		}
	}

	return resp
}

// ToEssayListResponse 批量转换
func ToEssayListResponse(essays []*entity.Essay) *EssayListResponse {
	items := make([]*EssayResponse, 0, len(essays))
	for _, e := range essays {
		items = append(items, ToEssayResponse(e))
	}
	return &EssayListResponse{Essays: items}
}
