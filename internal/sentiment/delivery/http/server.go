package http

import (
	"errors"
	"net/http"

	"reddit-stock-sentiment/internal/sentiment/dto"
	"reddit-stock-sentiment/pkg/apperror"
	"reddit-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer creates an Echo instance with the template renderer, error
// handler and request middleware installed.
func NewServer(log *logger.Logger) (*echo.Echo, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = NewErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(requestContext())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	return e, nil
}

// requestContext copies the request id onto the request context for *Context log calls.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

// RequestLogger logs one line per request through the application logger.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("HTTP request",
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.Field("latency", v.Latency),
				logger.StringField("request_id", v.RequestID),
				logger.StringField("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// NewErrorHandler answers unhandled errors, including recovered panics, with
// the {"error": message} body used by the API.
func NewErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(he.Code)
			}
		} else {
			appErr := apperror.As(err)
			status = appErr.HTTPStatus()
			message = appErr.Error()
		}

		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "Unhandled request error",
				logger.ErrorField(err),
				logger.StringField("uri", c.Request().RequestURI),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.ErrorResponse{Error: message})
		}
		if err != nil {
			log.Error("Failed to write error response", logger.ErrorField(err))
		}
	}
}
