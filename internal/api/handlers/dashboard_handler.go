package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/report"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

type DashboardHandler struct {
	engine  *report.Engine
	timeout time.Duration
}

func NewDashboardHandler(engine *report.Engine, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		engine:  engine,
		timeout: timeout,
	}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	sel := report.Selector{
		City:       c.Query("city", model.AllCities),
		Technician: c.Query("technician", model.AllTechnicians),
	}
	onlyUnmonitored := c.QueryBool("only_unmonitored")

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	m, err := h.engine.Dashboard(ctx, sel, onlyUnmonitored)
	if err != nil {
		return sourceError(c, err)
	}

	return c.JSON(m)
}

func (h *DashboardHandler) GetFilters(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	opts, err := h.engine.FilterOptions(ctx)
	if err != nil {
		return sourceError(c, err)
	}

	return c.JSON(opts)
}

func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	count, err := h.engine.Refresh(ctx)
	if err != nil {
		return sourceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Dados recarregados",
		"records": count,
	})
}

func sourceError(c *fiber.Ctx, err error) error {
	var missing *source.MissingColumnsError
	if errors.As(err, &missing) {
		logger.Error("Source is missing required columns", zap.Strings("columns", missing.Columns))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":           "A fonte de dados não contém todas as colunas obrigatórias",
			"missing_columns": missing.Columns,
		})
	}

	var invalid *report.InvalidRecordError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": invalid.Error(),
			"index": invalid.Index,
		})
	}

	var saveErr *source.SaveError
	if errors.As(err, &saveErr) {
		logger.Error("Save failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Falha ao salvar, os dados editados foram mantidos. Tente novamente.",
		})
	}

	switch {
	case errors.Is(err, source.ErrAuth):
		logger.Error("Source authorization failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Falha de autorização ao acessar a fonte de dados",
		})
	case errors.Is(err, source.ErrUnavailable):
		logger.Error("Source unavailable", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Fonte de dados indisponível, tente novamente",
		})
	case errors.Is(err, source.ErrReadOnly):
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "A fonte de dados configurada não permite gravação",
		})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Source operation timed out", zap.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Tempo limite excedido ao acessar a fonte de dados",
		})
	}

	logger.Error("Unexpected source failure", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Erro inesperado ao processar os dados",
	})
}
