package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/domain/models"
	"github.com/mamadbah2/inmilk/internal/service/calculator"
	"github.com/mamadbah2/inmilk/internal/service/downloads"
	"github.com/mamadbah2/inmilk/internal/service/reporting"
	"github.com/mamadbah2/inmilk/web"
)

const reportsPath = "/reports/"

// Simulator runs calculate actions.
type Simulator interface {
	Run(ctx context.Context, raw models.RawInputs) (*models.Simulation, error)
	Labels() reporting.Labels
	RendererName() string
}

// DownloadSource resolves download tokens.
type DownloadSource interface {
	Get(token string) (downloads.Download, bool)
}

// CalculatorHandler serves the calculator page, the JSON API and report downloads.
type CalculatorHandler struct {
	svc       Simulator
	downloads DownloadSource
	logger    *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(svc Simulator, downloads DownloadSource, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{svc: svc, downloads: downloads, logger: logger}
}

type fieldView struct {
	Key   string
	Label string
	Help  string
	Value string
}

type pageData struct {
	Labels      reporting.Labels
	Fields      []fieldView
	Error       string
	Dashboard   *models.Dashboard
	DownloadURL string
}

// Index renders the empty form.
func (h *CalculatorHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, h.page(models.RawInputs{}))
}

// Calculate handles the form post and renders the dashboard.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var raw models.RawInputs
	if err := c.ShouldBind(&raw); err != nil {
		h.logger.Warn("invalid form payload", zap.Error(err))
		c.HTML(http.StatusBadRequest, web.IndexTemplate, h.page(raw))
		return
	}

	data := h.page(raw)
	sim, err := h.svc.Run(c.Request.Context(), raw)
	if err != nil {
		if inputErr, ok := classifyInputError(err, data.Labels); ok {
			data.Error = inputErr.Message
			c.HTML(http.StatusUnprocessableEntity, web.IndexTemplate, data)
			return
		}
		h.logger.Error("failed running simulation", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to generate report")
		return
	}

	data.Dashboard = &sim.Dashboard
	data.DownloadURL = downloadURL(sim.DownloadToken)
	c.HTML(http.StatusOK, web.IndexTemplate, data)
}

// Health reports liveness and the active renderer.
func (h *CalculatorHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "renderer": h.svc.RendererName()})
}

func (h *CalculatorHandler) page(raw models.RawInputs) pageData {
	labels := h.svc.Labels()
	values := raw.Values()

	fields := make([]fieldView, 0, len(models.InputFields))
	for _, key := range models.InputFields {
		label := labels.Fields[key]
		fields = append(fields, fieldView{Key: key, Label: label.Form, Help: label.Help, Value: values[key]})
	}
	return pageData{Labels: labels, Fields: fields}
}

// inputError is the user-facing shape of a calculator validation failure.
type inputError struct {
	Kind    string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
	Metric  string   `json:"metric,omitempty"`
}

func classifyInputError(err error, labels reporting.Labels) (inputError, bool) {
	var missing *calculator.ValidationError
	if errors.As(err, &missing) {
		return inputError{Kind: "missing_field", Message: labels.MissingField, Fields: missing.Fields}, true
	}
	var overflow *calculator.RangeError
	if errors.As(err, &overflow) {
		return inputError{Kind: "out_of_range", Message: labels.InvalidNumber, Fields: []string{}, Metric: overflow.Metric}, true
	}
	var invalid *calculator.ParseError
	if errors.As(err, &invalid) {
		return inputError{Kind: "invalid_number", Message: labels.InvalidNumber, Fields: []string{invalid.Field}}, true
	}
	return inputError{}, false
}

func downloadURL(token string) string {
	if token == "" {
		return ""
	}
	return reportsPath + token
}
