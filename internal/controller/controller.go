// Package controller holds the helpers shared by the HTTP controllers.
package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/rs/zerolog/log"
)

// UseJSONFieldNames makes binding errors name fields by their JSON key.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// BindJSON binds the body into req, writing a 400 and returning false on failure.
func BindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		RespondError(ctx, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) *apperror.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("invalid request body")
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{Field: fieldPath(fe), Message: validationMessage(fe)})
	}
	return apperror.Validation("invalid request body", fields...)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// RespondError writes err with the status code for its kind.
func RespondError(ctx *gin.Context, err error) {
	appErr := apperror.As(err)
	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindConflict:
		status = http.StatusConflict
	}

	resp := dto.ErrorResponse{Error: string(appErr.Kind), Message: appErr.Message}
	for _, f := range appErr.Fields {
		resp.Fields = append(resp.Fields, dto.FieldErrorDTO{Field: f.Field, Message: f.Message})
	}
	ctx.AbortWithStatusJSON(status, resp)
}
