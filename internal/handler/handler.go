package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectdesk/internal/apperr"
	"projectdesk/internal/schema"
	"projectdesk/pkg/logger"
)

// parseID reads the :id path parameter. Ids are INTEGER columns, so a
// number outside int32 can never name a stored record.
func parseID(c *gin.Context, title string) (int, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperr.NotFound(title + " not found")
	}
	if err != nil {
		return 0, apperr.Validation(fmt.Sprintf("invalid id %q", raw), err)
	}
	return int(id), nil
}

// bindJSON decodes and validates the request body into obj.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperr.Validation(schema.DescribeBindError(err), err)
	}
	return nil
}

// respondError writes {"detail": ...} with the status mapped from err.
func respondError(c *gin.Context, log *zap.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)
	l := logger.WithTrace(c.Request.Context(), log).With(zap.Stringer("kind", apperr.KindOf(err)))
	if status >= 500 {
		l.Error(op+" failed", zap.Int("status", status), zap.Error(err))
	} else {
		l.Info(op+" rejected", zap.Int("status", status), zap.String("detail", apperr.Message(err)))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, schema.ErrorResponse{Detail: apperr.Message(err)})
}
