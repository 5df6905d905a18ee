package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"subseek/internal/corpus"
	"subseek/internal/logging"
)

type searchResultResponse struct {
	VideoID         string  `json:"video_id"`
	VideoReference  string  `json:"video_reference"`
	Text            string  `json:"text"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	Duration        float64 `json:"duration"`
	SequenceNumber  int     `json:"sequence_number"`
	ReplayReference string  `json:"replay_reference"`
}

type contextItemResponse struct {
	Text           string  `json:"text"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	SequenceNumber int     `json:"sequence_number"`
	IsTarget       bool    `json:"is_target"`
}

type videoCountResponse struct {
	VideoID string `json:"video_id"`
	Records int    `json:"records"`
}

type statsResponse struct {
	TotalRecords         int                  `json:"total_records"`
	UniqueVideos         int                  `json:"unique_videos"`
	TotalDurationSeconds float64              `json:"total_duration_seconds"`
	TopVideos            []videoCountResponse `json:"top_videos"`
}

func (s *Server) handleSearch(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		term = c.Query("term")
	}
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	query := corpus.Query{Term: term}
	if exact, err := parseBoolParam(c, "exact"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else {
		query.Exact = exact
	}
	if limit, ok, err := parseIntParam(c, "limit"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else if ok {
		query.Limit = limit
	}
	if min, ok, err := parseFloatParam(c, "min_duration"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else if ok {
		query.Filters.MinDuration = &min
	}
	if max, ok, err := parseFloatParam(c, "max_duration"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else if ok {
		query.Filters.MaxDuration = &max
	}
	if ids := c.Query("video_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.Filters.VideoIDs = append(query.Filters.VideoIDs, id)
			}
		}
	}
	if excludeShort, err := parseBoolParam(c, "exclude_short"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else {
		query.Filters.ExcludeShort = excludeShort
	}

	if query.Limit <= 0 {
		if query.Filters.Empty() {
			query.Limit = s.defaults.DefaultLimit
		} else {
			query.Limit = s.defaults.FilteredLimit
		}
	}

	results, err := s.store.Search(c.Request.Context(), query)
	if err != nil {
		s.logger.Error("search failed", logging.Args(logging.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	response := make([]searchResultResponse, 0, len(results))
	for _, result := range results {
		response = append(response, searchResultResponse{
			VideoID:         result.VideoID,
			VideoReference:  result.VideoReference,
			Text:            result.Text,
			StartTime:       result.StartTime,
			EndTime:         result.EndTime,
			Duration:        result.Duration,
			SequenceNumber:  result.SequenceNumber,
			ReplayReference: result.ReplayReference,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleContext(c *gin.Context) {
	videoID := c.Query("video_id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter video_id"})
		return
	}
	targetTime, ok, err := parseFloatParam(c, "time")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter time"})
		return
	}
	window, windowSet, err := parseFloatParam(c, "window")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !windowSet {
		window = float64(s.defaults.ContextWindowSeconds)
	}

	items, err := s.store.Context(c.Request.Context(), videoID, targetTime, window)
	if err != nil {
		s.logger.Error("context lookup failed", logging.Args(logging.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context lookup failed"})
		return
	}

	response := make([]contextItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, contextItemResponse{
			Text:           item.Text,
			StartTime:      item.StartTime,
			EndTime:        item.EndTime,
			SequenceNumber: item.SequenceNumber,
			IsTarget:       item.IsTarget,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("stats failed", logging.Args(logging.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}

	response := statsResponse{
		TotalRecords:         stats.TotalRecords,
		UniqueVideos:         stats.UniqueVideos,
		TotalDurationSeconds: stats.TotalDurationSeconds,
		TopVideos:            make([]videoCountResponse, 0, len(stats.TopVideos)),
	}
	for _, vc := range stats.TopVideos {
		response.TopVideos = append(response.TopVideos, videoCountResponse{VideoID: vc.VideoID, Records: vc.Records})
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleVideos(c *gin.Context) {
	counts, err := s.store.VideoCounts(c.Request.Context())
	if err != nil {
		s.logger.Error("video listing failed", logging.Args(logging.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "video listing failed"})
		return
	}

	response := make([]videoCountResponse, 0, len(counts))
	for _, vc := range counts {
		response = append(response, videoCountResponse{VideoID: vc.VideoID, Records: vc.Records})
	}
	c.JSON(http.StatusOK, response)
}

func parseBoolParam(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidParam(name)
	}
	return value, nil
}

func parseIntParam(c *gin.Context, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, invalidParam(name)
	}
	return value, true, nil
}

func parseFloatParam(c *gin.Context, name string) (float64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, invalidParam(name)
	}
	return value, true, nil
}

type paramError string

func (e paramError) Error() string { return "invalid query parameter " + string(e) }

func invalidParam(name string) error { return paramError(name) }
