package service

import (
	"fmt"
	"strings"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/model"
)

// normalizeOptions trims the option list of a question. Multiple-choice
// questions need at least one distinct, non-blank option; every other type
// stores no options at all.
func normalizeOptions(prefix, questionType string, options []string) ([]string, []apperror.FieldError) {
	if !model.IsValidQuestionType(questionType) {
		return nil, []apperror.FieldError{{Field: prefix + ".type", Message: "must be one of multiple-choice, text, rating, textarea"}}
	}
	if questionType != model.QuestionTypeMultipleChoice {
		return []string{}, nil
	}

	var errs []apperror.FieldError
	if len(options) == 0 {
		errs = append(errs, apperror.FieldError{Field: prefix + ".options", Message: "multiple-choice questions need at least one option"})
	}
	seen := make(map[string]bool, len(options))
	out := make([]string, 0, len(options))
	for i, opt := range options {
		opt = strings.TrimSpace(opt)
		field := fmt.Sprintf("%s.options[%d]", prefix, i)
		switch {
		case opt == "":
			errs = append(errs, apperror.FieldError{Field: field, Message: "must not be blank"})
		case seen[opt]:
			errs = append(errs, apperror.FieldError{Field: field, Message: "duplicate option"})
		default:
			seen[opt] = true
			out = append(out, opt)
		}
	}
	return out, errs
}
