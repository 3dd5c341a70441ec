package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	billingdomain "github.com/acueductoapp/acueducto/internal/billing/domain"
	"github.com/gin-gonic/gin"
)

type invoiceRequest struct {
	Contract    string `json:"contract"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r invoiceRequest) period() (billingdomain.Period, error) {
	start, err := time.Parse("2006-01-02", r.PeriodStart)
	if err != nil {
		return billingdomain.Period{}, newValidationError("period_start", "invalid_period", "invalid period start")
	}
	end, err := time.Parse("2006-01-02", r.PeriodEnd)
	if err != nil {
		return billingdomain.Period{}, newValidationError("period_end", "invalid_period", "invalid period end")
	}
	return billingdomain.Period{Start: start, End: end}, nil
}

func (s *Server) GetInvoice(c *gin.Context) {
	number, err := strconv.ParseInt(strings.TrimSpace(c.Param("number")), 10, 64)
	if err != nil {
		AbortWithError(c, newValidationError("number", "invalid_number", "invalid invoice number"))
		return
	}

	resp, err := s.billingSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomerInvoices(c *gin.Context) {
	resp, err := s.billingSvc.ListForContract(c.Request.Context(), strings.TrimSpace(c.Param("contract")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) IssueInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	period, err := req.period()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.Issue(c.Request.Context(), billingdomain.IssueInvoiceRequest{
		Contract: req.Contract,
		Period:   period,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	period, err := req.period()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rendered, err := s.billingSvc.RenderPDF(c.Request.Context(), billingdomain.RenderInvoiceRequest{
		Contract: req.Contract,
		Period:   period,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "factura_"+req.Contract+".pdf"))
	c.Data(http.StatusOK, "application/pdf", rendered)
}

func (s *Server) EmailInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	period, err := req.period()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.billingSvc.EmailInvoice(c.Request.Context(), billingdomain.EmailInvoiceRequest{
		Contract: req.Contract,
		Period:   period,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"sent": true}})
}

type exportInvoicesRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (s *Server) ExportInvoices(c *gin.Context) {
	var req exportInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	period, err := invoiceRequest{PeriodStart: req.PeriodStart, PeriodEnd: req.PeriodEnd}.period()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.billingSvc.BulkExport(c.Request.Context(), billingdomain.BulkExportRequest{
		Period: period,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if len(result.Failures) > 0 {
		c.Header("X-Export-Failures", strconv.Itoa(len(result.Failures)))
	}
	c.Header("Content-Disposition", `attachment; filename="facturas.zip"`)
	c.Data(http.StatusOK, "application/zip", result.Archive)
}
