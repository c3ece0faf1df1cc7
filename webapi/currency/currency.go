package currency

import (
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for currency metadata.
func Routes(app *fiber.App, registry *currency.Registry) {
	currencyGroup := app.Group("/api/currencies")
	currencyGroup.Get("/", ListCurrencies(registry))
	currencyGroup.Get("/:code", GetCurrency(registry))
}

// ListCurrencies returns a Fiber handler for listing the offered currencies.
// @Summary List currencies
// @Description Get display metadata for every offered currency
// @Tags currencies
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/currencies [get]
func ListCurrencies(registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metas := registry.List()
		out := make([]*Response, 0, len(metas))
		for _, meta := range metas {
			out = append(out, ToResponse(meta))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", out)
	}
}

// GetCurrency returns currency information by code
// @Summary Get currency by code
// @Description Get display metadata for one currency
// @Tags currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/currencies/{code} [get]
func GetCurrency(registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		meta, ok := registry.Lookup(code)
		if !ok {
			return common.ProblemDetailsJSON(c, "Currency not found", fiber.NewError(fiber.StatusNotFound, "unknown currency "+code))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", ToResponse(meta))
	}
}
