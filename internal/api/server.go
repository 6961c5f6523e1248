// Package api handles the HTTP endpoints for consent form submissions
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicforms/consent-engine/internal/mailer"
	"github.com/clinicforms/consent-engine/internal/renderer"
	"github.com/clinicforms/consent-engine/pkg/formspec"
)

// Deliverer dispatches the clinic and patient emails for a submission
type Deliverer interface {
	DeliverSubmission(sub mailer.Submission, pdfBase64 string) error
}

// Options carries the server's request-independent settings
type Options struct {
	FrontendOrigin string
	FormsDir       string
	Timezone       *time.Location
}

// Server is the API server
type Server struct {
	router   *gin.Engine
	renderer *renderer.Renderer
	deliver  Deliverer
	opts     Options
}

// NewServer creates a new API server
func NewServer(rend *renderer.Renderer, deliver Deliverer, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(corsMiddleware(opts.FrontendOrigin))

	server := &Server{
		router:   router,
		renderer: rend,
		deliver:  deliver,
		opts:     opts,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.router.POST("/post", s.handleSubmit)
	s.router.GET("/forms", s.handleForms)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

type submitRequest struct {
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"required"`
	FormType      string          `json:"formType" binding:"required"`
	DrawSignature string          `json:"drawSignature" binding:"required"`
	Consent       map[string]bool `json:"consent" binding:"required"`
}

// handleSubmit accepts a consent form submission, renders the PDF and
// dispatches both emails before acknowledging.
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	flags, err := validateSubmission(&req)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	submittedAt := time.Now().In(s.opts.Timezone)

	artifact, err := s.renderer.Render(renderer.Request{
		ClientName:       req.Name,
		FormType:         req.FormType,
		ConsentFlags:     flags,
		SignatureDataURI: req.DrawSignature,
		SubmittedAt:      submittedAt,
	})
	if err != nil {
		status := renderStatus(err)
		slog.Error("Render failed", "form_type", req.FormType, "error", err)
		c.JSON(status, gin.H{"error": clientMessage(status)})
		return
	}

	if err := s.deliver.DeliverSubmission(mailer.Submission{
		PatientName:  req.Name,
		PatientEmail: req.Email,
		SubmittedAt:  submittedAt,
	}, artifact); err != nil {
		slog.Error("Delivery failed", "error", err)
		c.JSON(500, gin.H{"error": clientMessage(500)})
		return
	}

	c.JSON(200, gin.H{"message": "Form submission successful"})
}

// handleForms lists the form types available on disk with their consent
// section counts, so the frontend can stay in sync with the templates.
func (s *Server) handleForms(c *gin.Context) {
	entries, err := os.ReadDir(s.opts.FormsDir)
	if err != nil {
		slog.Error("Failed to read forms directory", "error", err)
		c.JSON(500, gin.H{"error": clientMessage(500)})
		return
	}

	forms := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		form, err := formspec.ParseFile(filepath.Join(s.opts.FormsDir, name))
		if err != nil {
			slog.Error("Skipping unparseable template", "file", name, "error", err)
			continue
		}

		forms = append(forms, gin.H{
			"formType":        strings.TrimSuffix(name, ".json"),
			"title":           form.Document.Title,
			"consentSections": form.Document.ConsentCount(),
		})
	}

	c.JSON(200, gin.H{"forms": forms})
}

// renderStatus maps the renderer's error kinds onto HTTP statuses: faults in
// the submission are the client's, everything else is ours.
func renderStatus(err error) int {
	if errors.Is(err, renderer.ErrTemplateNotFound) || errors.Is(err, renderer.ErrInvalidSignature) {
		return 400
	}
	return 500
}

func clientMessage(status int) string {
	if status == 400 {
		return "submission rejected"
	}
	return "submission failed"
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
