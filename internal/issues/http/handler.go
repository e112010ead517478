package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/api/http/apierr"
	"github.com/arttttt/Bealin/internal/issues/domain"
	"github.com/arttttt/Bealin/internal/issues/usecase"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeNoActiveProject = "NO_ACTIVE_PROJECT"
)

type Handler struct {
	uc  *usecase.Set
	log *zap.Logger
}

func New(uc *usecase.Set, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, log: logger.Named("issues")}
}

// Register mounts the issue routes on an /api group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/issues", h.list)
	rg.GET("/issues/:id", h.get)
	rg.GET("/labels", h.labels)
}

func (h *Handler) list(c *gin.Context) {
	filter := domain.Filter{
		Status: domain.Status(strings.TrimSpace(c.Query("status"))),
		Label:  strings.TrimSpace(c.Query("label")),
	}
	issues, err := h.uc.ListIssues.Execute(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	issue, err := h.uc.GetIssue.Execute(c.Request.Context(), id)
	if errors.Is(err, domain.ErrIssueNotFound) {
		apierr.Write(c, http.StatusNotFound, CodeNotFound, "Issue with ID '"+id+"' not found")
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issue": issue})
}

func (h *Handler) labels(c *gin.Context) {
	labels, err := h.uc.ListLabels.Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNoActiveProject) {
		apierr.Write(c, http.StatusConflict, CodeNoActiveProject, "No project is active")
		return
	}
	apierr.Internal(c, h.log, err)
}
