package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createCustomerRequest struct {
	Contract                string   `json:"contract"`
	MeterNumber             string   `json:"meter_number"`
	Name                    string   `json:"name"`
	LastName                string   `json:"last_name"`
	Email                   string   `json:"email"`
	Phone                   string   `json:"phone"`
	Address                 string   `json:"address"`
	Zone                    string   `json:"zone"`
	Category                string   `json:"category"`
	CurrentReading          *float64 `json:"current_reading"`
	Credit                  float64  `json:"credit"`
	CreditDescription       string   `json:"credit_description"`
	ExtraCharges            float64  `json:"extra_charges"`
	ExtraChargesDescription string   `json:"extra_charges_description"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Contract:                req.Contract,
		MeterNumber:             req.MeterNumber,
		Name:                    req.Name,
		LastName:                req.LastName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Address:                 req.Address,
		Zone:                    req.Zone,
		Category:                req.Category,
		CurrentReading:          req.CurrentReading,
		Credit:                  req.Credit,
		CreditDescription:       req.CreditDescription,
		ExtraCharges:            req.ExtraCharges,
		ExtraChargesDescription: req.ExtraChargesDescription,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Q        string `form:"q"`
		Zone     string `form:"zone"`
		Category string `form:"category"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Search:    strings.TrimSpace(query.Q),
		Zone:      strings.TrimSpace(query.Zone),
		Category:  strings.TrimSpace(query.Category),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomer(c *gin.Context) {
	contract := strings.TrimSpace(c.Param("contract"))
	resp, err := s.customerSvc.GetByContract(c.Request.Context(), contract)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	MeterNumber             *string  `json:"meter_number"`
	Name                    *string  `json:"name"`
	LastName                *string  `json:"last_name"`
	Email                   *string  `json:"email"`
	Phone                   *string  `json:"phone"`
	Address                 *string  `json:"address"`
	Zone                    *string  `json:"zone"`
	Category                *string  `json:"category"`
	Credit                  *float64 `json:"credit"`
	CreditDescription       *string  `json:"credit_description"`
	ExtraCharges            *float64 `json:"extra_charges"`
	ExtraChargesDescription *string  `json:"extra_charges_description"`
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	contract := strings.TrimSpace(c.Param("contract"))

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), contract, customerdomain.UpdateCustomerRequest{
		MeterNumber:             req.MeterNumber,
		Name:                    req.Name,
		LastName:                req.LastName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Address:                 req.Address,
		Zone:                    req.Zone,
		Category:                req.Category,
		Credit:                  req.Credit,
		CreditDescription:       req.CreditDescription,
		ExtraCharges:            req.ExtraCharges,
		ExtraChargesDescription: req.ExtraChargesDescription,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	contract := strings.TrimSpace(c.Param("contract"))
	if err := s.customerSvc.Delete(c.Request.Context(), contract); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
