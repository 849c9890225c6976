package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"purls/internal/config"
	apperrors "purls/internal/errors"
	"purls/internal/log"
	"purls/internal/model"
	"purls/internal/params"
	"purls/internal/trace"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

const (
	msgInvalidURL  = "Invalid URL"
	msgCheckFailed = "Failed to check redirects"
)

// Server exposes the URL engine and the redirect tracer over HTTP.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	tracer   *trace.Tracer
	checker  *trace.Checker
	validate *validator.Validate
}

// NewServer wires routes and middleware. client performs the outbound HEAD requests.
func NewServer(cfg *config.Config, client trace.Client) *Server {
	tracer := trace.NewTracer(client)
	s := &Server{
		cfg:      cfg,
		echo:     echo.New(),
		tracer:   tracer,
		checker:  trace.NewChecker(tracer),
		validate: validator.New(),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic in %s %s: %v\n%s", c.Request().Method, c.Request().URL.Path, err, stack)
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("%s %s %d %s [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	e.StaticFS("/", echo.MustSubFS(staticFS, "static"))

	api := e.Group("/api")
	api.POST("/redirect-check", s.handleRedirectCheck)
	api.POST("/check", s.handleCheck)
	api.POST("/parse", s.handleParse)
	api.POST("/compose", s.handleCompose)
	api.GET("/help", s.handleHelp)
	api.GET("/version", s.handleVersion)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// StartServer serves on cfg.Port until SIGINT/SIGTERM, then shuts down gracefully.
func StartServer(cfg *config.Config, client trace.Client) error {
	s := NewServer(cfg, client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	fmt.Printf("Starting purls web server at http://localhost:%d\n", cfg.Port)
	fmt.Printf("Go to http://localhost:%d in your browser.\n", cfg.Port)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down web server")
	return s.echo.Shutdown(shutdownCtx)
}

type traceRequest struct {
	URL          string `json:"url" validate:"required"`
	MaxRedirects *int   `json:"maxRedirects" validate:"omitempty,min=0"`
}

type parseRequest struct {
	URL string `json:"url"`
}

type composeRequest struct {
	Base   string        `json:"base"`
	Params []model.Param `json:"params"`
}

type parseResponse struct {
	model.DecomposedURL
	Composed string `json:"composed"`
}

// bind decodes and validates the request body; any failure is a client error.
func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.BadRequest(msgInvalidURL)
	}
	if err := s.validate.Struct(req); err != nil {
		return apperrors.BadRequest(msgInvalidURL)
	}
	return nil
}

// maxRedirects applies the configured default and clamps to the configured limit.
func (s *Server) maxRedirects(requested *int) int {
	if requested == nil {
		return clampInt(s.cfg.MaxRedirects, 0, s.cfg.MaxRedirectsLimit)
	}
	return clampInt(*requested, 0, s.cfg.MaxRedirectsLimit)
}

func (s *Server) handleRedirectCheck(c echo.Context) error {
	var req traceRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	res := s.tracer.Trace(c.Request().Context(), req.URL, s.maxRedirects(req.MaxRedirects))
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleCheck(c echo.Context) error {
	var req traceRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	d := params.Decompose(req.URL)
	if d.IsEmpty() {
		return c.NoContent(http.StatusNoContent)
	}
	report, ok := s.checker.Check(c.Request().Context(), d, s.maxRedirects(req.MaxRedirects))
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleParse(c echo.Context) error {
	var req parseRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	d := params.Decompose(req.URL)
	return c.JSON(http.StatusOK, parseResponse{
		DecomposedURL: d,
		Composed:      params.ComposeURL(d),
	})
}

func (s *Server) handleCompose(c echo.Context) error {
	var req composeRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": params.Compose(req.Base, req.Params),
	})
}

func (s *Server) handleHelp(c echo.Context) error {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": model.Version})
}

// handleError renders every error as {"error": message}. Errors that carry no
// status of their own are reported as a generic check failure.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var ce *apperrors.CustomError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ce):
		err = ce
	case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
		err = &apperrors.CustomError{Code: he.Code, Message: fmt.Sprint(he.Message), Err: he}
	default:
		err = apperrors.Wrap(err, msgCheckFailed)
	}

	code := apperrors.GetStatusCode(err)
	if apperrors.IsBadRequest(err) {
		log.Debug("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	} else if code >= http.StatusInternalServerError {
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		log.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, cause)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": err.Error()})
	}
	if err != nil {
		log.Error("writing error response: %v", err)
	}
}

// clampInt clamps v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
