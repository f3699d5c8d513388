package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/models/reports"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators adds the au_phone binding rule so handlers can
// reject malformed phone numbers before the model layer runs.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("au_phone", func(fl validator.FieldLevel) bool {
			return utils.ValidatePhoneNumber(fl.Field().String(), "AU") == nil
		})
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrorNoAccountingOrganization),
		errors.Is(err, reports.ErrorAmbiguousFilter),
		errors.Is(err, reports.ErrorMissingScope):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// filterTimezone widens filter dates in the location's timezone when the
// filter carries a location; job-mode filters fall back to the default.
func filterTimezone(c *gin.Context, input *reports.ReportFilterInput) string {
	if input.LocationId == 0 {
		return ""
	}
	location, err := models.GetLocation(c.Request.Context(), input.LocationId)
	if err != nil {
		return ""
	}
	return location.Timezone
}

func reportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reports.ReportFilterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter, err := input.ToFilter(filterTimezone(c, &input))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		db := config.GetDB()
		fetcher := reports.NewDocumentFetcher(db)

		switch c.Param("kind") {
		case "volume":
			report, err := reports.GetVolumeReportWithComparison(ctx, fetcher, filter)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, report)
		case "revenue":
			balances := models.NewGLAccountService(db)
			report, err := reports.GetRevenueReportWithComparison(ctx, fetcher, balances, filter)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, report)
		case "receivables":
			report, err := reports.GetReceivablesReportWithComparison(ctx, fetcher, filter)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, report)
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown report kind"})
		}
	}
}

func incomeReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reports.ReportFilterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter, err := input.ToFilter(filterTimezone(c, &input))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fetcher := reports.NewDocumentFetcher(config.GetDB())
		report, err := reports.GetIncomeReportWithComparison(c.Request.Context(), fetcher, filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func trialBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reports.TrialBalanceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		report, err := reports.GetGlAccountTrialReport(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func trialBalanceExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reports.TrialBalanceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		report, err := reports.GetGlAccountTrialReport(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			writeError(c, err)
			return
		}
		buffer, err := reports.ExportTrialBalanceExcel(report)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="trial-balance.xlsx"`)
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			buffer.Bytes())
	}
}

func costingSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobId, ok := idParam(c)
		if !ok {
			return
		}
		fetcher := reports.NewDocumentFetcher(config.GetDB())
		summary, err := reports.GetCostingSummary(c.Request.Context(), fetcher, jobId)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func createHandler[I any, O any](create func(c *gin.Context, input *I) (O, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input I
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := create(c, &input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func approveHandler(approve func(c *gin.Context, id int) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := approve(c, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": models.DocumentStatusApproved})
	}
}

func attachmentUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobId, ok := idParam(c)
		if !ok {
			return
		}
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		file, err := header.Open()
		if err != nil {
			writeError(c, err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(c, err)
			return
		}

		attachment, err := models.SaveJobAttachment(c.Request.Context(), jobId,
			header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, attachment)
	}
}

func registerRoutes(r *gin.Engine) {
	r.POST("/reports/income", incomeReportHandler())
	r.POST("/reports/trial-balance", trialBalanceHandler())
	r.POST("/reports/trial-balance/export", trialBalanceExportHandler())
	r.POST("/reports/:kind", reportHandler())
	r.GET("/jobs/:id/costing-summary", costingSummaryHandler())

	r.POST("/jobs", createHandler(func(c *gin.Context, input *models.NewJob) (*models.Job, error) {
		return models.CreateJob(c.Request.Context(), input)
	}))
	r.POST("/jobs/:id/attachments", attachmentUploadHandler())
	r.POST("/contacts", createHandler(func(c *gin.Context, input *models.NewContact) (*models.Contact, error) {
		return models.CreateContact(c.Request.Context(), input)
	}))
	type newTag struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	r.POST("/tags", createHandler(func(c *gin.Context, input *newTag) (*models.Tag, error) {
		return models.CreateTag(c.Request.Context(), input.Name, input.Color)
	}))
	type attachTag struct {
		TagId        int                 `json:"tag_id" binding:"required"`
		DocumentType models.DocumentType `json:"document_type" binding:"required"`
		DocumentId   int                 `json:"document_id" binding:"required"`
	}
	r.POST("/tags/attach", func(c *gin.Context) {
		var input attachTag
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !input.DocumentType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document_type"})
			return
		}
		if err := models.AttachTag(c.Request.Context(), input.TagId, input.DocumentType, input.DocumentId); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.POST("/tax-rates", createHandler(func(c *gin.Context, input *models.NewTaxRate) (*models.TaxRate, error) {
		return models.CreateTaxRate(c.Request.Context(), input)
	}))
	r.POST("/users", createHandler(func(c *gin.Context, input *models.NewUser) (*models.User, error) {
		return models.CreateUser(c.Request.Context(), input)
	}))
	r.POST("/assessment-reports", createHandler(func(c *gin.Context, input *models.NewAssessmentReport) (*models.AssessmentReport, error) {
		return models.CreateAssessmentReport(c.Request.Context(), input)
	}))

	r.POST("/invoices", createHandler(func(c *gin.Context, input *models.NewInvoice) (*models.Invoice, error) {
		return models.CreateInvoice(c.Request.Context(), input)
	}))
	r.POST("/invoices/:id/approve", approveHandler(func(c *gin.Context, id int) error {
		return models.ApproveInvoice(c.Request.Context(), id)
	}))
	r.POST("/invoices/:id/payments", func(c *gin.Context) {
		invoiceId, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewInvoicePayment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payment, err := models.CreateInvoicePayment(c.Request.Context(), invoiceId, &input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, payment)
	})

	r.POST("/credit-notes", createHandler(func(c *gin.Context, input *models.NewCreditNote) (*models.CreditNote, error) {
		return models.CreateCreditNote(c.Request.Context(), input)
	}))
	r.POST("/credit-notes/:id/approve", approveHandler(func(c *gin.Context, id int) error {
		return models.ApproveCreditNote(c.Request.Context(), id)
	}))
	r.POST("/purchase-orders", createHandler(func(c *gin.Context, input *models.NewPurchaseOrder) (*models.PurchaseOrder, error) {
		return models.CreatePurchaseOrder(c.Request.Context(), input)
	}))
	r.POST("/purchase-orders/:id/approve", approveHandler(func(c *gin.Context, id int) error {
		return models.ApprovePurchaseOrder(c.Request.Context(), id)
	}))
}
