package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/loader"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.1", true},
		{"192.168.1.1", true},
		{"169.254.1.1", true},
		{"::1", true},
		{"0.0.0.0", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestPublicAddrs_LiteralIPs(t *testing.T) {
	ips, err := publicAddrs(context.Background(), "93.184.216.34")
	require.NoError(t, err)
	require.Len(t, ips, 1)
	assert.Equal(t, "93.184.216.34", ips[0].String())

	_, err = publicAddrs(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private or loopback")
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client)
	assert.Equal(t, loader.DefaultTimeout, client.Timeout)
	assert.NotNil(t, client.CheckRedirect)
	assert.NotNil(t, client.Transport)
}

func TestSafeHTTPClient_RefusesLoopbackSchemaHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type": "string"}`))
	}))
	defer srv.Close()

	_, err := loader.LoadWithClient(context.Background(), srv.URL+"/schema.json", newSafeHTTPClient())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private or loopback")
}

func TestSafeHTTPClient_RedirectLimit(t *testing.T) {
	client := newSafeHTTPClient()
	req := httptest.NewRequest(http.MethodGet, "http://93.184.216.34/next.json", nil)
	via := make([]*http.Request, maxSchemaRedirects)

	err := client.CheckRedirect(req, via)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 10 redirects")

	assert.NoError(t, client.CheckRedirect(req, via[:1]))
}
