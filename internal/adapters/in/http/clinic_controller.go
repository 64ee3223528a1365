package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/normalizer"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/in"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
	"github.com/suchimauz/pet-clinic-core/internal/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ClinicController struct {
	appointments in.AppointmentUseCase
	memberships  in.MembershipUseCase
	cfg          *config.Config
	logger       out.LoggerPort
	printer      *message.Printer
}

func NewClinicController(
	appointments in.AppointmentUseCase,
	memberships in.MembershipUseCase,
	cfg *config.Config,
	logger out.LoggerPort,
) *ClinicController {
	return &ClinicController{
		appointments: appointments,
		memberships:  memberships,
		cfg:          cfg,
		logger:       logger,
		printer:      message.NewPrinter(language.Vietnamese),
	}
}

func (c *ClinicController) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(c.logger))
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.cfg.App.Version})
	})

	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg.Auth.BasicClients))
	{
		api.POST("/appointments", c.createAppointment)
		api.POST("/appointments/normalize", c.normalizeAppointment)
		api.GET("/appointments/:id", c.getAppointment)
		api.PATCH("/appointments/:id/status", c.updateAppointmentStatus)
		api.GET("/customers/:customerId/appointments", c.listCustomerAppointments)
		api.GET("/customers/:customerId/membership", c.getMembership)
		api.POST("/invoices", c.createInvoice)
		api.POST("/invoices/:id/pay", c.payInvoice)
		api.GET("/statuses/translate", c.translateStatus)
	}
}

// Ответ с английским статусом для фронтенда
type AppointmentResponse struct {
	ID              uint   `json:"id"`
	CustomerID      int64  `json:"customer_id"`
	PetID           int64  `json:"pet_id"`
	BranchID        int64  `json:"branch_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
}

func newAppointmentResponse(appointment domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              appointment.ID,
		CustomerID:      appointment.CustomerID,
		PetID:           appointment.PetID,
		BranchID:        appointment.BranchID,
		DoctorID:        appointment.DoctorID,
		AppointmentTime: utils.FormatInstant(appointment.AppointmentTime),
		Status:          domain.ToFrontendLabel(appointment.Status),
		Notes:           appointment.Notes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateInvoiceRequest struct {
	CustomerID    int64 `json:"customer_id" binding:"required"`
	AppointmentID *uint `json:"appointment_id"`
	Amount        int64 `json:"amount" binding:"required"`
}

type MembershipResponse struct {
	domain.MembershipSummary
	YearlySpendDisplay  string `json:"yearly_spend_display"`
	AmountNeededDisplay string `json:"amount_needed_display,omitempty"`
}

func bindRawAppointment(ctx *gin.Context) (domain.RawAppointmentInput, bool) {
	var raw domain.RawAppointmentInput
	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil || raw == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON object"})
		return nil, false
	}
	return raw, true
}

func (c *ClinicController) createAppointment(ctx *gin.Context) {
	raw, ok := bindRawAppointment(ctx)
	if !ok {
		return
	}

	appointment, err := c.appointments.CreateAppointment(ctx.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteAppointment) {
			// Повторяем нормализацию, чтобы вернуть список полей
			result := c.appointments.NormalizeAppointment(raw)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missing": result.Missing})
			return
		}
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newAppointmentResponse(*appointment))
}

func (c *ClinicController) normalizeAppointment(ctx *gin.Context) {
	raw, ok := bindRawAppointment(ctx)
	if !ok {
		return
	}

	result := c.appointments.NormalizeAppointment(raw)
	switch result.Outcome {
	case normalizer.OutcomeOK:
		ctx.JSON(http.StatusOK, result.Payload)
	case normalizer.OutcomeIncomplete:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrIncompleteAppointment.Error(), "missing": result.Missing})
	default:
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Err.Error()})
	}
}

func (c *ClinicController) getAppointment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	appointment, err := c.appointments.GetAppointment(ctx.Request.Context(), uint(id))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newAppointmentResponse(*appointment))
}

func (c *ClinicController) updateAppointmentStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.appointments.UpdateAppointmentStatus(ctx.Request.Context(), uint(id), req.Status)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newAppointmentResponse(*appointment))
}

func (c *ClinicController) listCustomerAppointments(ctx *gin.Context) {
	customerID, err := strconv.ParseInt(ctx.Param("customerId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	appointments, err := c.appointments.ListCustomerAppointments(ctx.Request.Context(), customerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	result := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		result = append(result, newAppointmentResponse(appointment))
	}

	ctx.JSON(http.StatusOK, gin.H{"customerId": customerID, "appointments": result})
}

func (c *ClinicController) getMembership(ctx *gin.Context) {
	customerID, err := strconv.ParseInt(ctx.Param("customerId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	summary, err := c.memberships.GetMembership(ctx.Request.Context(), customerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	resp := MembershipResponse{
		MembershipSummary:  *summary,
		YearlySpendDisplay: c.formatVND(float64(summary.YearlySpend)),
	}
	if summary.Next != nil {
		resp.AmountNeededDisplay = c.formatVND(summary.Next.AmountNeeded)
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *ClinicController) createInvoice(ctx *gin.Context) {
	var req CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := c.memberships.CreateInvoice(ctx.Request.Context(), req.CustomerID, req.AppointmentID, req.Amount)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, invoice)
}

func (c *ClinicController) payInvoice(ctx *gin.Context) {
	id, err := snowflake.ParseString(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID format"})
		return
	}

	invoice, err := c.memberships.PayInvoice(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}

func (c *ClinicController) translateStatus(ctx *gin.Context) {
	label := ctx.Query("label")
	direction := ctx.DefaultQuery("direction", "backend")

	switch direction {
	case "backend":
		ctx.JSON(http.StatusOK, gin.H{"label": label, "translated": domain.ToBackendLabel(label)})
	case "frontend":
		ctx.JSON(http.StatusOK, gin.H{"label": label, "translated": domain.ToFrontendLabel(label)})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "direction must be backend or frontend"})
	}
}

// formatVND форматирует сумму по-вьетнамски: 12.000.000 ₫
func (c *ClinicController) formatVND(amount float64) string {
	return c.printer.Sprintf("%d ₫", int64(math.Round(amount)))
}
