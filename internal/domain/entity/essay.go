// Package entity 定义领域实体
package entity

import (
	"time"
)

// RecoveryStrategy 标记归一化采用的恢复策略
type RecoveryStrategy string

const (
	// RecoveryDirect 直接解析成功（含截取 JSON 片段）
	RecoveryDirect RecoveryStrategy = "direct"
	// RecoveryRepaired 修复文本后解析成功
	RecoveryRepaired RecoveryStrategy = "repaired"
	// RecoveryFieldExtracted 仅按字段标记提取出部分结构
	RecoveryFieldExtracted RecoveryStrategy = "field_extracted"
	// RecoveryUnstructured 无法恢复结构，原文直出
	RecoveryUnstructured RecoveryStrategy = "unstructured"
)

// GenerationMetadata 生成元数据
type GenerationMetadata struct {
	Model            string  `json:"model,omitempty"`
	Provider         string  `json:"provider,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	RecoveryStrategy string  `json:"recovery_strategy,omitempty"`
	GeneratedAt      string  `json:"generated_at,omitempty"`
}

// Essay 作文实体
type Essay struct {
	ID                 string              `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             string              `json:"user_id" gorm:"type:uuid;index;not null"`
	Topic              string              `json:"topic" gorm:"type:varchar(500);not null"`
	EssayType          string              `json:"essay_type" gorm:"type:varchar(50);not null"`
	WritingStyle       string              `json:"writing_style" gorm:"type:varchar(50);not null"`
	CitationStyle      string              `json:"citation_style" gorm:"type:varchar(50);not null"`
	TargetLength       int                 `json:"target_length" gorm:"not null;default:0"`
	Requirements       string              `json:"requirements,omitempty" gorm:"type:text"`
	Sources            string              `json:"sources,omitempty" gorm:"type:text"`
	Content            string              `json:"content" gorm:"type:text;not null"`
	WordCount          int                 `json:"word_count" gorm:"not null;default:0"`
	CharacterCount     int                 `json:"character_count" gorm:"not null;default:0"`
	Humanized          bool                `json:"humanized" gorm:"not null;default:false"`
	GenerationMetadata *GenerationMetadata `json:"generation_metadata,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt          time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Essay) TableName() string {
	return "essays"
}

// NewEssay 创建新作文记录
// 新记录的 Humanized 恒为 false，由后续的人性化流程翻转。
func NewEssay(userID string) *Essay {
	now := time.Now()
	return &Essay{
		UserID:    userID,
		Humanized: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetContent 设置内容并同步两个计数
// wordCount/characterCount 由装配结果重新计算，不信任上游回传的数值。
func (e *Essay) SetContent(content string, wordCount, characterCount int) {
	e.Content = content
	e.WordCount = wordCount
	e.CharacterCount = characterCount
	e.UpdatedAt = time.Now()
}
