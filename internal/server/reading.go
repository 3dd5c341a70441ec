package server

import (
	"net/http"
	"strings"
	"time"

	readingdomain "github.com/acueductoapp/acueducto/internal/reading/domain"
	"github.com/gin-gonic/gin"
)

type submitReadingRequest struct {
	Contract string  `json:"contract"`
	Value    float64 `json:"value"`
	Date     string  `json:"date"`
}

func (s *Server) SubmitReading(c *gin.Context) {
	var req submitReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var readingDate time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
			return
		}
		readingDate = parsed
	}

	resp, err := s.readingSvc.Submit(c.Request.Context(), readingdomain.SubmitReadingRequest{
		Contract: req.Contract,
		Value:    req.Value,
		Date:     readingDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.History(c.Request.Context(), readingdomain.HistoryRequest{
		Contract: strings.TrimSpace(c.Param("contract")),
		Limit:    query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
