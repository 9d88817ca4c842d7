package api

import (
	"net/http"

	"ytautomation/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterGenerateRoutes registers the generation config endpoint.
func (s *Server) RegisterGenerateRoutes(r *gin.Engine) {
	r.POST("/api/generate", s.handleGenerate)
}

// handleGenerate validates a generation config, fills defaults and echoes it
// back with the canvas geometry. Rendering happens on the client.
func (s *Server) handleGenerate(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid JSON payload", Details: err.Error()})
		return
	}

	cfg, err := req.Resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	data := types.NewVideoData(cfg)
	s.logger.Debug("Generation config accepted",
		zap.Int("font_size", data.FontSize),
		zap.Int("duration", data.Duration),
		zap.Int("total_frames", data.TotalFrames))

	c.JSON(http.StatusOK, data)
}
