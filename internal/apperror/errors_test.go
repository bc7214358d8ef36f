package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("survey")))
	assert.Equal(t, KindValidation, KindOf(Validation("bad", FieldError{Field: "title", Message: "required"})))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("context: %w", NotFound("question"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	assert.Equal(t, "internal error", err.Message)
	assert.NotContains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorListsFields(t *testing.T) {
	err := Validation("missing required answers",
		FieldError{Field: "answers.q1", Message: "required"},
		FieldError{Field: "answers.q2", Message: "required"},
	)
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Error(), "answers.q1: required")
	assert.Contains(t, err.Error(), "answers.q2: required")
}

func TestAsWrapsForeignErrors(t *testing.T) {
	appErr := As(errors.New("boom"))
	assert.Equal(t, KindInternal, appErr.Kind)

	nf := NotFound("survey")
	assert.Same(t, nf, As(fmt.Errorf("wrap: %w", nf)))
}
