package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/api/http/apierr"
	"github.com/arttttt/Bealin/internal/watcher"
)

const defaultKeepAlive = 15 * time.Second

// ChangeFeed is the subscription side of the beads watcher.
type ChangeFeed interface {
	Subscribe() (<-chan watcher.ChangeEvent, func())
}

type EventsHandler struct {
	feed      ChangeFeed
	keepAlive time.Duration
	log       *zap.Logger
}

func NewEventsHandler(feed ChangeFeed, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		feed:      feed,
		keepAlive: defaultKeepAlive,
		log:       logger.Named("events"),
	}
}

// StreamChanges pushes watcher change events to the client using
// Server-Sent Events until the client disconnects or the watcher closes.
func (h *EventsHandler) StreamChanges(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		apierr.Write(c, http.StatusInternalServerError, apierr.CodeInternal, "Streaming unsupported")
		return
	}

	events, cancel := h.feed.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case ev, ok := <-events:
			if !ok {
				fmt.Fprint(c.Writer, "event: closed\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.log.Warn("encode change event", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *EventsHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/events", h.StreamChanges)
}
