package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type cacheStat struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}

type cacheStatsResponse struct {
	Caches []cacheStat `json:"caches"`
	Total  int         `json:"total"`
}

func (s *Server) collectCacheStats() cacheStatsResponse {
	resp := cacheStatsResponse{Caches: make([]cacheStat, 0, len(s.caches))}
	for _, ca := range s.caches {
		n := ca.Len()
		resp.Caches = append(resp.Caches, cacheStat{Name: ca.Name(), Entries: n})
		resp.Total += n
	}
	return resp
}

func (s *Server) cacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.collectCacheStats())
}

// purgeCaches drops every in-process entry, as on logout. Requests already
// waiting on a backend call still get its result; nothing from before the
// purge is served afterwards.
func (s *Server) purgeCaches(c echo.Context) error {
	before := s.collectCacheStats()
	for _, ca := range s.caches {
		ca.Purge()
	}
	if s.logger != nil {
		s.logger.WithField("entries", before.Total).Info("Caches purged")
	}
	return c.JSON(http.StatusOK, map[string]int{"purged": before.Total})
}
