package service

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler register custom error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrBackendUnreachable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrNetwork] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles errors returned by echo handlers: LinkErrors map through the
// code-to-status table, echo.HTTPErrors keep their own status, anything else is
// an internal_server_error.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	linkErr := ToLinkError(err)
	if linkErr == nil {
		linkErr = NewLinkError(ErrInternalServerError, "an internal server error has occurred", err)
	}

	var statusCode int
	var he *echo.HTTPError
	if he, _ = err.(*echo.HTTPError); he != nil {
		m, _ := he.Message.(string)
		linkErr = NewLinkError(ErrInternalServerError, m, err)
		statusCode = he.Code
	} else {
		statusCode = h.getStatusCode(linkErr.Code)
	}

	level.Error(h.logger).Log(
		"msg", "HTTP request error",
		"err", err,
	)

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead && he != nil {
			_ = c.NoContent(he.Code)
		} else {
			_ = c.JSON(statusCode, ErrResponse{Error: linkErr})
		}
	}
}

// ErrResponse from server.
type ErrResponse struct {
	Error *LinkError `json:"error,omitempty"`
}
