// Package server exposes the mock API over HTTP so a browser shell can reach it with a real fetch.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"classattend/internal/httpmiddleware"
	"classattend/internal/mockapi"
)

// maxBody bounds request bodies; mark-attendance carries several base64 images.
const maxBody = 32 << 20

// Deps are the collaborators of the router.
type Deps struct {
	Service     *mockapi.Service
	Gatherer    prometheus.Gatherer
	Limiter     *httpmiddleware.TokenBucket
	CORSOrigins []string
	// Checks are reported by /healthz; any false check makes it 503.
	Checks map[string]func(context.Context) bool
}

// NewRouter builds the gin engine. Every path other than /healthz and /metrics is
// forwarded to the mock service unchanged.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.RequestID())
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}

	r.GET("/healthz", healthz(d.Checks))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	r.NoRoute(forward(d.Service))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func healthz(checks map[string]func(context.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		status := http.StatusOK
		for name, check := range checks {
			ok := check(c.Request.Context())
			body[name] = ok
			if !ok {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
		}
		c.JSON(status, body)
	}
}

func forward(svc *mockapi.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, mockapi.ErrorBody{Detail: "Request Entity Too Large"})
				return
			}
			c.JSON(http.StatusBadRequest, mockapi.ErrorBody{Detail: err.Error()})
			return
		}
		if len(raw) == 0 {
			raw = nil
		}

		resp, err := svc.Do(c.Request.Context(), mockapi.Request{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Header: c.Request.Header,
			Body:   raw,
		})
		if err != nil {
			c.JSON(http.StatusGatewayTimeout, mockapi.ErrorBody{Detail: err.Error()})
			return
		}
		c.Data(resp.Status, "application/json", resp.Body)
	}
}
