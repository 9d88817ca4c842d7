package api

import (
	"ytautomation/config"
	"ytautomation/logging"
	"ytautomation/storage"
	"ytautomation/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server carries the dependencies shared by the HTTP handlers.
type Server struct {
	uploader      upload.Uploader
	archive       *storage.Archive
	logger        *zap.Logger
	maxUploadSize int64
}

// ServerOption customises a Server.
type ServerOption func(*Server)

// WithMaxUploadSize caps the /api/upload request body at n bytes.
func WithMaxUploadSize(n int64) ServerOption {
	return func(s *Server) { s.maxUploadSize = n }
}

// NewServer builds a Server. archive may be nil.
func NewServer(uploader upload.Uploader, archive *storage.Archive, logger *zap.Logger, opts ...ServerOption) *Server {
	s := &Server{
		uploader:      uploader,
		archive:       archive,
		logger:        logger,
		maxUploadSize: config.MaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware(s.logger))
	r.MaxMultipartMemory = 32 << 20

	// Register resource routers
	s.RegisterGenerateRoutes(r)
	s.RegisterUploadRoutes(r)
	RegisterHealthRoutes(r)
	RegisterWebRoutes(r)
	return r
}
