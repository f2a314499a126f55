package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/pkg/logger"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func init() {
	// Report validation failures under their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
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
}

// respondError writes the uniform error body. Internal errors are logged
// and replaced by a generic message.
func respondError(c *gin.Context, l *zap.Logger, err error) {
	var (
		verr  *apperr.ValidationError
		nf    *apperr.NotFoundError
		unath *apperr.UnauthorizedError
	)
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
			Error:   "validation_error",
			Message: verr.Message,
			Fields:  verr.Fields,
		})
	case errors.As(err, &unath):
		msg := unath.Reason
		if msg == "" {
			msg = "unauthorized"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: msg})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Error: "not_found", Message: nf.Error()})
	default:
		logger.WithTrace(c.Request.Context(), l).Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
			Error:   "internal_error",
			Message: "internal server error",
		})
	}
}

// respondBindError answers a failed bind. Parser detail only goes to the log.
func respondBindError(c *gin.Context, l *zap.Logger, err error) {
	logger.WithTrace(c.Request.Context(), l).Debug("Request binding failed", zap.Error(err))
	respondError(c, l, bindError(err))
}

// bindError turns a gin binding failure into a ValidationError.
func bindError(err error) error {
	var (
		ves     validator.ValidationErrors
		syntax  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &ves):
		verr := apperr.Validation("invalid request")
		for _, fe := range ves {
			verr.Add(fe.Field(), fieldMessage(fe))
		}
		return verr
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Validation("invalid request body", field, "has the wrong type")
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("invalid request body", "body", "is not valid JSON")
	case errors.Is(err, io.EOF):
		return apperr.Validation("invalid request body", "body", "is empty")
	default:
		return apperr.Validation("invalid request body", "body", "could not be parsed")
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "url":
		return "is not a valid URL"
	default:
		return "is invalid"
	}
}

// idParam parses :id. Anything that is not a positive integer cannot name a
// stored record and is reported as not found.
func idParam(c *gin.Context, resource string) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource, raw)
	}
	return id, nil
}

// pageQuery reads limit and offset; absent values are zero.
func pageQuery(c *gin.Context) (limit, offset int, err error) {
	verr := apperr.Validation("invalid query")
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			verr.Add("limit", "must be an integer")
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			verr.Add("offset", "must be an integer")
		}
	}
	return limit, offset, verr.OrNil()
}
