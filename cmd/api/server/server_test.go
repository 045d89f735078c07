package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"login-signup-service/internal/adapter/db/memory"
	ginhandler "login-signup-service/internal/adapter/gin/handler"
	"login-signup-service/internal/config"
	"login-signup-service/internal/usecase/auth"
	"login-signup-service/pkg/security"
)

func freePort(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func newTestServer(t *testing.T, port string) *Server {
	log := zaptest.NewLogger(t)
	cfg := &config.Config{}
	cfg.App.Port = port
	cfg.CORS.AllowedOrigins = []string{"*"}

	uc := auth.New(memory.NewUserRepoMemory(), security.NewBcryptHasher(4), log)
	return New(cfg, log, ginhandler.NewAuthHandler(uc, log))
}

func TestSetupGinServer(t *testing.T) {
	s := newTestServer(t, "8081")

	assert.Equal(t, ":8081", s.Gin.Addr)
	assert.NotNil(t, s.Gin.Handler)
	assert.Equal(t, 10*time.Second, s.Gin.ReadTimeout)
}

func TestServer_StartAndShutdown(t *testing.T) {
	port := freePort(t)
	s := newTestServer(t, port)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Gin.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWithSignal_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := WithSignal(parent)
	defer stop()

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled")
	}
}
