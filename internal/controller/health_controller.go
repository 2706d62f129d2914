package controller

import (
	"campus-assist-be/pkg/llm/chain"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	db       *gorm.DB
	llmChain *chain.Chain
}

func NewHealthController(db *gorm.DB, llmChain *chain.Chain) IHealthController {
	return &healthController{
		db:       db,
		llmChain: llmChain,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := c.db.DB(); err != nil {
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "unavailable"
	}

	return ctx.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"backends": c.llmChain.Backends(),
	})
}
