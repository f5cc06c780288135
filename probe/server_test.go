package probe_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"descrow/probe"
)

func TestServer(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name          string
		listenAddress string
		endpoint      string
		statusCode    int
		appName       string
		body          []byte
	}{
		{
			name:          "Health handler",
			listenAddress: ":10101",
			endpoint:      "http://:10101/healthz",
			statusCode:    http.StatusOK,
			appName:       "descrow",
			body:          []byte(`{"name":"descrow","version":""}`),
		},
		{
			name:          "Ready handler",
			listenAddress: ":10102",
			endpoint:      "http://:10102/ready",
			statusCode:    http.StatusOK,
			appName:       "descrow",
			body:          []byte(`{"name":"descrow","version":""}`),
		},
		{
			name:          "Invalid endpoint",
			listenAddress: ":10103",
			endpoint:      "http://:10103/invalid",
			statusCode:    http.StatusNotFound,
			body:          []byte("404 page not found\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			probeServer := probe.NewServer(tc.listenAddress, probe.Options{Name: tc.appName}, slog.Default())

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return probeServer.Run(ctx)
			})

			// Wait for server to start.
			time.Sleep(time.Second)

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.endpoint, http.NoBody)
			rq.NoError(err)

			resp, err := http.DefaultClient.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			bodyBytes, err := io.ReadAll(resp.Body)
			rq.NoError(err)

			rq.Equal(tc.body, bodyBytes)

			cancel()

			rq.NoError(g.Wait())
		})
	}
}
