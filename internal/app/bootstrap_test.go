package app

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"estagios/internal/config"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/jwt"
	"estagios/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: " :9000 ", want: ":9000"},
		{in: "  ", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func newTestContainer() *Container {
	logger := zap.NewNop()
	return &Container{
		Config: config.Config{App: config.AppConfig{AppName: "estagios", HTTPPort: "8080", WSPort: "8081"}},
		Logger: logger,
		JWT:    jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
		Hub:    ws.NewHub(logger),
	}
}

func TestNew_ProtectedRouteRequiresToken(t *testing.T) {
	a, err := New(newTestContainer())
	require.NoError(t, err)
	assert.Equal(t, ":8081", a.WS.Addr)

	req := httptest.NewRequest("GET", "/estudante/propostas/compativeis", nil)
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.EqualValues(t, fiber.StatusUnauthorized, envelope["status"])
}

func TestNew_RejectsEmptyPort(t *testing.T) {
	c := newTestContainer()
	c.Config.App.WSPort = ""

	_, err := New(c)
	assert.Error(t, err)
}
