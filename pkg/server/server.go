// Package server exposes polygon inflation over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/inflate"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/chazu/inflate/pkg/source"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// MaxBodyBytes limits the size of an uploaded GeoJSON document.
const MaxBodyBytes = 16 << 20

// Options configures the HTTP handler.
type Options struct {
	Logger *slog.Logger
	// Defaults are the parameters that query values are applied over.
	// A zero value means inflate.DefaultParams.
	Defaults *inflate.Params
	// Timeout bounds a single conversion; 0 means no limit.
	Timeout time.Duration
}

type handler struct {
	logger   *slog.Logger
	defaults inflate.Params
	timeout  time.Duration
}

// New returns a gin engine serving
//
//	POST /inflate?format=stl|scad|3mf|json&name=...&<params>
//	GET  /healthz
//
// The POST body is a GeoJSON FeatureCollection. As on the command line,
// thickness is the total height, shared between the halves of a two-sided part.
func New(opts Options) *gin.Engine {
	h := &handler{logger: opts.Logger, defaults: inflate.DefaultParams(), timeout: opts.Timeout}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if opts.Defaults != nil {
		h.defaults = *opts.Defaults
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestID)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/inflate", h.inflate)
	return r
}

func (h *handler) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("requestID", id)
	c.Header(RequestIDHeader, id)
	start := time.Now()
	c.Next()
	h.logger.Info("request",
		"id", id,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start))
}

func (h *handler) inflate(c *gin.Context) {
	p := h.defaults
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p = p.PerSide()
	format := c.DefaultQuery("format", "stl")
	if format != mesh.JSONFormat && !lo.Contains(mesh.Formats, format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format " + format})
		return
	}
	name := c.DefaultQuery("name", "shape")

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	polygons, err := source.FromGeoJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	logger := h.logger.With("id", c.GetString("requestID"))
	parts, err := inflate.InflatePaths(ctx, polygons, p, name, inflate.WithLogger(logger))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, geom.ErrDegenerate) || errors.Is(err, inflate.ErrInvalidParams) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if format == mesh.JSONFormat {
		out := make([]*mesh.Indexed, len(parts))
		for i, part := range parts {
			out[i] = mesh.ToIndexed(part.Mesh, part.Name)
		}
		c.JSON(http.StatusOK, gin.H{"parts": out})
		return
	}

	var buf bytes.Buffer
	if err := mesh.Encode(&buf, format, parts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+name+"."+format)
	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}

var contentTypes = map[string]string{
	"stl":  "model/stl",
	"scad": "text/plain; charset=utf-8",
	"3mf":  "model/3mf",
}
