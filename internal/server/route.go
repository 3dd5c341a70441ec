package server

import (
	"net/http"
	"strings"

	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/gin-gonic/gin"
)

type createRouteRequest struct {
	Name  string `json:"name"`
	Stops []struct {
		CustomerID string `json:"customer_id"`
		Sequence   int    `json:"sequence"`
	} `json:"stops"`
}

func (s *Server) CreateRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	stops := make([]routedomain.RouteStop, 0, len(req.Stops))
	for _, stop := range req.Stops {
		stops = append(stops, routedomain.RouteStop{
			CustomerID: stop.CustomerID,
			Sequence:   stop.Sequence,
		})
	}

	resp, err := s.routeSvc.Create(c.Request.Context(), routedomain.CreateRouteRequest{
		Name:  req.Name,
		Stops: stops,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRoutes(c *gin.Context) {
	resp, err := s.routeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRoute(c *gin.Context) {
	resp, err := s.routeSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetActiveRoute(c *gin.Context) {
	resp, err := s.routeSvc.GetActive(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) FinalizeRoute(c *gin.Context) {
	resp, err := s.routeSvc.Finalize(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) NextPendingStop(c *gin.Context) {
	resp, err := s.routeSvc.NextPending(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
