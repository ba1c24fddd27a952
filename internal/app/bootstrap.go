package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"estagios/internal/config"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/delivery/http/routes"
	"estagios/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Fiber  *fiber.App
	WS     *http.Server
	Hub    *ws.Hub
	Logger *zap.Logger

	httpAddr string
}

// New assembles the HTTP API and the websocket server from c.
func New(c *Container) (*App, error) {
	httpAddr, err := ListenAddr(c.Config.App.HTTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP port: %w", err)
	}
	wsAddr, err := ListenAddr(c.Config.App.WSPort)
	if err != nil {
		return nil, fmt.Errorf("invalid WS port: %w", err)
	}

	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})
	registerGlobalMiddleware(f, c.Logger)
	routes.NewRegistry(c.Handlers(), c.AuthMiddleware()).Register(f)

	wsHandler := ws.NewHandler(c.Hub, c.JWT, c.Logger)

	return &App{
		Fiber:  f,
		Hub:    c.Hub,
		Logger: c.Logger,
		WS: &http.Server{
			Addr:              wsAddr,
			Handler:           wsHandler.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		httpAddr: httpAddr,
	}, nil
}

// Bootstrap connects the container and builds the App. The returned cleanup
// releases the database pool and the redis client.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, c.Close, nil
}

// Run serves HTTP and websocket traffic until ctx is cancelled or one of the
// listeners fails, then shuts both down within shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.Hub.Run(hubCtx)

	errCh := make(chan error, 2)
	go func() {
		a.Logger.Info("http server listening", zap.String("addr", a.httpAddr))
		errCh <- a.Fiber.Listen(a.httpAddr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	go func() {
		a.Logger.Info("websocket server listening", zap.String("addr", a.WS.Addr))
		if err := a.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case runErr = <-errCh:
		if runErr != nil {
			a.Logger.Error("server error", zap.Error(runErr))
		}
	case <-ctx.Done():
		a.Logger.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		a.Logger.Warn("http shutdown error", zap.Error(err))
	}
	if err := a.WS.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("websocket shutdown error", zap.Error(err))
	}
	stopHub()

	return runErr
}

// The access log wraps the error middleware and sees the rendered status.
func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
