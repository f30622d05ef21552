package webapi

import (
	"strconv"

	"github.com/gobanking/bankingapp/pkg/dto"
	holdersvc "github.com/gobanking/bankingapp/pkg/service/holder"
	"github.com/gofiber/fiber/v2"
)

// AccountHolderRoutes registers the account-holder endpoints:
//
//   - POST   /api/accountholders/add          : create an account holder
//   - PUT    /api/accountholders/update       : partially update an account holder
//   - DELETE /api/accountholders/:id          : delete an account holder
//   - GET    /api/accountholders/by-id/:id    : fetch one account holder
//   - GET    /api/accountholders/all          : list all account holders
func AccountHolderRoutes(app *fiber.App, svc *holdersvc.Service) {
	group := app.Group("/api/accountholders")
	group.Post("/add", CreateAccountHolder(svc))
	group.Put("/update", UpdateAccountHolder(svc))
	group.Delete("/:id", DeleteAccountHolder(svc))
	group.Get("/by-id/:id", GetAccountHolderByID(svc))
	group.Get("/all", GetAccountHolders(svc))
}

// CreateAccountHolder handles POST /api/accountholders/add.
func CreateAccountHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.CreateAccountHolderRequest](c)
		if input == nil {
			return err
		}
		resp, err := svc.Create(c.UserContext(), *input)
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// UpdateAccountHolder handles PUT /api/accountholders/update.
func UpdateAccountHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.UpdateAccountHolderRequest](c)
		if input == nil {
			return err
		}
		resp, err := svc.Update(c.UserContext(), *input)
		if err != nil {
			return err
		}
		// The only business failure here is an unknown holder, so it maps to
		// 404 like the other not-found outcomes.
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// DeleteAccountHolder handles DELETE /api/accountholders/:id.
func DeleteAccountHolder(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", err.Error())
		}
		resp, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// GetAccountHolderByID handles GET /api/accountholders/by-id/:id.
func GetAccountHolderByID(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", err.Error())
		}
		resp, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// GetAccountHolders handles GET /api/accountholders/all.
func GetAccountHolders(svc *holdersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.GetAll(c.UserContext())
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
