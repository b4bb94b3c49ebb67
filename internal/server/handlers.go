package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaki95/soundcloud-playlist/internal/soundcloud"
)

// getPlaylist resolves the soundcloud:// URI from the query string and
// returns the extracted tracks in document order.
func (s *Server) getPlaylist(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: uri"})
		return
	}

	playlist, err := s.client.GetPlaylist(c.Request.Context(), uri)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, soundcloud.ErrUnrecognizedRequest) {
			status = http.StatusBadRequest
		}
		slog.Error("Playlist extraction failed", "uri", uri, "error", err)
		c.JSON(status, gin.H{"error": fmt.Sprintf("failed to get playlist: %v", err)})
		return
	}

	c.JSON(http.StatusOK, playlist)
}
