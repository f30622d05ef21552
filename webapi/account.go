package webapi

import (
	"github.com/gobanking/bankingapp/pkg/dto"
	accountsvc "github.com/gobanking/bankingapp/pkg/service/account"
	"github.com/gofiber/fiber/v2"
)

// AccountRoutes registers the account endpoints:
//
//   - POST /api/accounts/add                              : open an account
//   - POST /api/accounts/transact                         : post a deposit or withdrawal
//   - GET  /api/accounts/by-id/:id                        : fetch one account
//   - GET  /api/accounts/by-account-number/:accountNumber : fetch by account number
//   - GET  /api/accounts/all                              : list all accounts
//   - GET  /api/accounts/:id/transactions                 : list an account's transactions
func AccountRoutes(app *fiber.App, svc *accountsvc.Service) {
	group := app.Group("/api/accounts")
	group.Post("/add", CreateAccount(svc))
	group.Post("/transact", Transact(svc))
	group.Get("/by-id/:id", GetAccountByID(svc))
	group.Get("/by-account-number/:accountNumber", GetAccountByNumber(svc))
	group.Get("/all", GetAccounts(svc))
	group.Get("/:id/transactions", GetAccountTransactions(svc))
}

// CreateAccount handles POST /api/accounts/add.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.CreateAccountRequest](c)
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

// Transact handles POST /api/accounts/transact.
func Transact(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.TransactionRequest](c)
		if input == nil {
			return err
		}
		resp, err := svc.Transact(c.UserContext(), *input)
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// GetAccountByID handles GET /api/accounts/by-id/:id.
func GetAccountByID(svc *accountsvc.Service) fiber.Handler {
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

// GetAccountByNumber handles GET /api/accounts/by-account-number/:accountNumber.
func GetAccountByNumber(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.GetByNumber(c.UserContext(), c.Params("accountNumber"))
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}

// GetAccounts handles GET /api/accounts/all.
func GetAccounts(svc *accountsvc.Service) fiber.Handler {
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

// GetAccountTransactions handles GET /api/accounts/:id/transactions.
func GetAccountTransactions(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", err.Error())
		}
		resp, err := svc.GetTransactions(c.UserContext(), id)
		if err != nil {
			return err
		}
		if !resp.Success {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.JSON(resp)
	}
}
