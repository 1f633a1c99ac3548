package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/report"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

type SitesHandler struct {
	engine  *report.Engine
	timeout time.Duration
}

func NewSitesHandler(engine *report.Engine, timeout time.Duration) *SitesHandler {
	return &SitesHandler{
		engine:  engine,
		timeout: timeout,
	}
}

func (h *SitesHandler) GetSites(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	records, err := h.engine.Records(ctx)
	if err != nil {
		return sourceError(c, err)
	}

	return c.JSON(fiber.Map{
		"columns":  model.Columns,
		"records":  records,
		"writable": h.engine.Writable(),
	})
}

func (h *SitesHandler) SaveSites(c *fiber.Ctx) error {
	var req struct {
		Records []model.SiteRecord `json:"records"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Records == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "records is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.engine.Replace(ctx, req.Records); err != nil {
		return sourceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Dados salvos com sucesso",
		"records": len(req.Records),
	})
}
