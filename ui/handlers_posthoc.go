package ui

import (
	"net/http"

	"posthoc/adapters/stats/engine"
	"posthoc/domain/table"
	"posthoc/internal/errors"

	"github.com/gin-gonic/gin"
)

// analyzeRequest carries the contingency table plus the engine parameters.
// Parameter defaults match the engine's: chi-square test, fdr correction,
// populations in rows, 4 digits.
type analyzeRequest struct {
	RowNames []string `json:"row_names" binding:"required"`
	ColNames []string `json:"col_names" binding:"required"`
	Counts   [][]int  `json:"counts" binding:"required"`

	Params engine.Params `json:"params"`
}

// handleAnalyze runs one post-hoc analysis and returns the report.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tbl, err := table.New(req.RowNames, req.ColNames, req.Counts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.engine.Run(c.Request.Context(), tbl, req.Params)
	if err != nil {
		s.logger.Warn("analysis failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, report)
}

// statusFor maps engine error codes to HTTP statuses: bad selectors and bad
// tables are client errors, a failing strategy is unprocessable input.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeUnknownStrategy, errors.CodeUnknownCorrection, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeStrategyFailure:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
