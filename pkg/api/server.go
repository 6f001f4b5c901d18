// Package api provides the REST API server for midibrowser
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/midibrowser/pkg/browser"
	"github.com/james-see/midibrowser/pkg/export"
	"github.com/james-see/midibrowser/pkg/smf"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title MIDI Browser API
// @version 1.0
// @description API for inspecting Standard MIDI Files and exporting note-on records
// @host localhost:8080
// @BasePath /api/v1

// maxUploadSize bounds multipart uploads held in memory
const maxUploadSize = 32 << 20

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with all routes registered
func NewRouter() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = maxUploadSize

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/inspect", handleInspect)
		v1.POST("/export", handleExport)
		v1.GET("/meta-types", listMetaTypes)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "midibrowser",
	})
}

// listFormats godoc
// @Summary List supported file extensions
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":    []string{string(browser.FormatMIDI)},
		"extensions": browser.Extensions,
	})
}

// MetaType is one entry of the meta event catalog
type MetaType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// listMetaTypes godoc
// @Summary List the meta event catalog
// @Description Returns every meta event type the decoder recognizes
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]MetaType
// @Router /api/v1/meta-types [get]
func listMetaTypes(c *gin.Context) {
	types := smf.MetaTypes()
	out := make([]MetaType, 0, len(types))
	for _, t := range types {
		out = append(out, MetaType{Code: fmt.Sprintf("0x%02X", uint8(t)), Name: t.String()})
	}
	c.JSON(http.StatusOK, gin.H{"meta_types": out})
}

// handleInspect godoc
// @Summary Inspect a MIDI file
// @Description Upload a MIDI file and receive its fully expanded chunk/event tree
// @Tags inspect
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file to inspect"
// @Param strict query bool false "Fail on overlong chunks and unsupported status bytes"
// @Success 200 {object} browser.Tree
// @Failure 400 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Router /api/v1/inspect [post]
func handleInspect(c *gin.Context) {
	f, ok := uploadedFile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, browser.Snapshot(f))
}

// handleExport godoc
// @Summary Export a track
// @Description Upload a MIDI file and receive the note-on records of one track
// @Tags export
// @Accept multipart/form-data
// @Produce text/plain
// @Param file formData file true "MIDI file to export from"
// @Param track query int false "Zero-based track index (default: 0)"
// @Param strict query bool false "Fail on overlong chunks and unsupported status bytes"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/export [post]
func handleExport(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("track", "0"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track index"})
		return
	}

	f, ok := uploadedFile(c)
	if !ok {
		return
	}

	track, err := f.Track(index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := track.ExportTo(&buf); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.DefaultFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// uploadedFile reads the "file" form field. It writes the error response
// itself and returns false when the upload is unusable.
func uploadedFile(c *gin.Context) (*browser.File, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, false
	}

	if !browser.IsSMF(data) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Not a Standard MIDI File"})
		return nil, false
	}

	strict, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))
	return browser.NewFile(header.Filename, data, browser.Options{Strict: strict}), true
}
