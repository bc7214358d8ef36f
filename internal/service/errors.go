package service

import (
	"errors"

	"github.com/lshigami/Surveyor/internal/apperror"
	"gorm.io/gorm"
)

// storeError maps a repository failure onto the caller-visible error kinds.
// Anything other than a missing row is opaque to the caller.
func storeError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(entity)
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
