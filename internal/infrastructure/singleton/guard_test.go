package singleton

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestGuard_PortAvailable(t *testing.T) {
	assert.NoError(t, NewGuard("/health").Check(freeAddr(t)))
}

func TestGuard_HealthyInstance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	addr := strings.TrimPrefix(server.URL, "http://")
	assert.ErrorIs(t, NewGuard("/health").Check(addr), ErrAlreadyRunning)
}

func TestGuard_UnhealthyInstance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	addr := strings.TrimPrefix(server.URL, "http://")
	assert.ErrorIs(t, NewGuard("/health").Check(addr), ErrPortBusy)
}

func TestGuard_InvalidAddress(t *testing.T) {
	err := NewGuard("/health").Check("invalid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPortBusy)
	assert.NotErrorIs(t, err, ErrAlreadyRunning)
}

func TestIsAddrInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	_, err = net.Listen("tcp", l.Addr().String())
	require.Error(t, err)
	assert.True(t, isAddrInUse(err))

	_, err = net.Listen("tcp", "invalid")
	assert.False(t, isAddrInUse(err))
}
