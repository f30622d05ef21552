// Package webapi exposes the banking operations over HTTP using Fiber.
// Handlers translate between transport and the service layer: request bodies
// are bound and validated at this edge, service envelopes map to 200/400/404
// and storage failures surface as 500 through the app error handler.
package webapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gobanking/bankingapp/pkg/domain"
	accountsvc "github.com/gobanking/bankingapp/pkg/service/account"
	holdersvc "github.com/gobanking/bankingapp/pkg/service/holder"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp assembles the Fiber application with all routes and middleware.
func NewApp(holderSvc *holdersvc.Service, accountSvc *accountsvc.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			title := "Internal Server Error"
			var fiberErr *fiber.Error
			switch {
			case errors.Is(err, domain.ErrStaleEntity):
				status = fiber.StatusConflict
				title = "Conflict"
			case errors.As(err, &fiberErr):
				status = fiberErr.Code
				title = fiberErr.Message
			}
			logger.Error("request failed", "path", c.Path(), "status", status, "error", err)
			return ErrorResponseJSON(c, status, title, err.Error())
		},
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"requestID", c.Locals(requestid.ConfigDefault.ContextKey),
		)
		return err
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working!")
	})

	AccountHolderRoutes(app, holderSvc)
	AccountRoutes(app, accountSvc)

	return app
}
