package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
	"github.com/danil228cmd/danisa-shop-bot/internal/service"
)

const (
	msgInvalidPassword = "invalid password"
	msgRouteNotFound   = "route not found"
	msgInvalidBody     = "invalid request body"
	msgInternal        = "internal server error"
)

// NotFound is the uniform body for unrecognized method+path combinations.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msgRouteNotFound})
}

// pathID parses an integer path token. Only plain positive digit
// strings pass; signed forms like "+5" fall through to the uniform 404,
// same as an unmatched route.
func pathID(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || raw[0] == '+' {
		NotFound(c)
		return 0, false
	}
	return id, true
}

// bindBody decodes a JSON body. An empty body is fine (it behaves like an
// empty object, so a missing password still 401s); malformed JSON is a
// 400 before anything else runs.
func bindBody(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return false
	}
	return true
}

// authorize checks the shared admin secret before any validation or
// store call.
func authorize(c *gin.Context, got, want string) bool {
	if got != want {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: msgInvalidPassword})
		return false
	}
	return true
}

// respondError maps the error taxonomy to status codes. Storage errors
// stay opaque to the caller.
func respondError(c *gin.Context, log *slog.Logger, err error, notFoundMsg string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Error()})
	case errors.Is(err, repository.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "name already taken"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFoundMsg})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgInternal})
	}
}
