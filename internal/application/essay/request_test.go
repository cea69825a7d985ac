package essay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() *GenerationRequest {
	return &GenerationRequest{
		Topic:         "The role of ritual in modern life",
		EssayType:     "reflective",
		WritingStyle:  "conversational",
		CitationStyle: "none",
		TargetLength:  500,
	}
}

func TestValidate_AcceptsCompleteRequest(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestValidate_ReportsAllMissingFields(t *testing.T) {
	req := &GenerationRequest{TargetLength: 500}

	err := req.Validate()

	var vErr *ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, []string{"topic", "essayType", "writingStyle", "citationStyle"}, vErr.Missing)
	}
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestValidate_WhitespaceCountsAsMissing(t *testing.T) {
	req := validRequest()
	req.Topic = "   "

	err := req.Validate()

	var vErr *ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, []string{"topic"}, vErr.Missing)
	}
}

func TestValidate_RejectsNonPositiveLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		req := validRequest()
		req.TargetLength = length

		err := req.Validate()

		var vErr *ValidationError
		if assert.ErrorAs(t, err, &vErr) {
			assert.Equal(t, []string{"length"}, vErr.Missing)
		}
	}
}

func TestValidate_FieldPresenceCheckedBeforeLength(t *testing.T) {
	req := &GenerationRequest{TargetLength: 0}

	err := req.Validate()

	var vErr *ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		// 缺字段时先报字段，length 的问题留到下一轮
		assert.NotContains(t, vErr.Missing, "length")
	}
}
