package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/api/http/apierr"
	"github.com/arttttt/Bealin/internal/projects/domain"
)

const watchSwitchTimeout = 10 * time.Second

func (h *Handler) list(c *gin.Context) {
	res, err := h.uc.GetProjects.Execute(c.Request.Context())
	if err != nil {
		apierr.Internal(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, projectsResponse{
		Projects:        ToDTOList(res.Projects),
		ActiveProjectID: res.ActiveProjectID,
	})
}

func (h *Handler) active(c *gin.Context) {
	p, err := h.uc.GetActiveProject.Execute(c.Request.Context())
	if err != nil {
		apierr.Internal(c, h.log, err)
		return
	}
	var resp projectResponse
	if p != nil {
		dto := ToDTO(*p)
		resp.Project = &dto
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) add(c *gin.Context) {
	req, ok := bindPath(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	root := BeadsPathToProjectPath(req.Path)
	p, err := h.uc.AddProject.Execute(ctx, root, strings.TrimSpace(req.Name))
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.switchWatcher(ctx, p.ID)
	c.JSON(http.StatusCreated, projectResponse{Project: ptr(ToDTO(*p))})
}

func (h *Handler) activate(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.uc.SetActiveProject.Execute(ctx, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	h.switchWatcher(ctx, "")
	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.uc.RemoveProject.Execute(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Internal(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) validatePath(c *gin.Context) {
	req, ok := bindPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.uc.ValidateProjectPath.Execute(req.Path))
}

// bindPath decodes a {path, name} body. It writes the 400 itself and
// reports false when the body is malformed or path is missing. Any other
// path, whitespace included, is left for the use case to judge.
func bindPath(c *gin.Context) (pathReq, bool) {
	var req pathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.InvalidRequest(c, "Request body must be a JSON object")
		return req, false
	}
	if req.Path == "" {
		apierr.InvalidRequest(c, "Path is required")
		return req, false
	}
	return req, true
}

// writeError renders typed use-case errors and collapses the rest to a 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		if status, ok := statusFor(de.Code); ok {
			apierr.Write(c, status, string(de.Code), de.Message)
			return
		}
	}
	apierr.Internal(c, h.log, err)
}

func statusFor(code domain.Code) (int, bool) {
	switch code {
	case domain.CodeInvalidRequest, domain.CodeInvalidPath:
		return http.StatusBadRequest, true
	case domain.CodeAlreadyExists:
		return http.StatusConflict, true
	case domain.CodeNotFound:
		return http.StatusNotFound, true
	}
	return 0, false
}

// switchWatcher re-reads the active project and, when it is set (and equals
// onlyID if given), repoints the watcher in the background. Nothing here can
// fail the request.
func (h *Handler) switchWatcher(ctx context.Context, onlyID string) {
	if h.watcher == nil {
		return
	}

	active, err := h.uc.GetActiveProject.Execute(ctx)
	if err != nil {
		h.log.Warn("read active project for watcher", zap.Error(err))
		return
	}
	if active == nil || (onlyID != "" && active.ID != onlyID) {
		return
	}

	root := active.Path
	go func() {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), watchSwitchTimeout)
		defer cancel()
		if err := h.watcher.WatchProject(wctx, root); err != nil {
			h.log.Warn("switch watcher", zap.String("path", root), zap.Error(err))
		}
	}()
}

func ptr[T any](v T) *T { return &v }
