package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chiku1101/druggs/internal/application"
)

const defaultSuggestionLimit = 10

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs one analysis. A request with neither drug nor
// condition is rejected before orchestration; collector failures never
// produce an HTTP error, only a degraded result.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req application.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := s.analyzer.RunAnalysis(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, application.ErrNoInput) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.WithError(err).Error("analysis failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleMedicineSearch(c *gin.Context) {
	name := c.Query("q")
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter q is required"})
		return
	}

	record, found, err := s.store.Lookup(c.Request.Context(), name)
	if err != nil {
		s.logger.WithError(err).Error("reference lookup failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "lookup failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no medicine found for " + name})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleMedicinesByCondition(c *gin.Context) {
	condition := c.Query("condition")
	if condition == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter condition is required"})
		return
	}

	records, err := s.store.SearchByIndication(c.Request.Context(), condition, limitParam(c))
	if err != nil {
		s.logger.WithError(err).Error("indication search failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"condition": condition, "medicines": records})
}

func (s *Server) handleDrugSuggestions(c *gin.Context) {
	names, err := s.store.SuggestNames(c.Request.Context(), c.Query("q"), limitParam(c))
	if err != nil {
		s.logger.WithError(err).Error("drug suggestion failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "suggestion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": emptyIfNil(names)})
}

func (s *Server) handleConditionSuggestions(c *gin.Context) {
	conditions, err := s.store.SuggestIndications(c.Request.Context(), c.Query("q"), limitParam(c))
	if err != nil {
		s.logger.WithError(err).Error("condition suggestion failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "suggestion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": emptyIfNil(conditions)})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSuggestionLimit)))
	if err != nil || limit <= 0 || limit > 100 {
		return defaultSuggestionLimit
	}
	return limit
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
