package rates

import (
	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/service/conversion"
	exchangesvc "github.com/amirasaad/fxconvert/pkg/service/exchange"
	"github.com/amirasaad/fxconvert/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for rates and conversions.
func Routes(app *fiber.App, exchangeSvc *exchangesvc.Service, conversionSvc *conversion.Service) {
	api := app.Group("/api")
	api.Get("/rates", GetRates(exchangeSvc))
	api.Post("/rates/refresh", RefreshRates(exchangeSvc))
	api.Get("/convert", Convert(exchangeSvc, conversionSvc))
	api.Post("/convert", ConvertBody(exchangeSvc, conversionSvc))
}

// GetRates returns the current rate table
// @Summary Current rates
// @Description Get the current rate table
// @Tags rates
// @Produce json
// @Success 200 {object} common.Response
// @Failure 503 {object} common.ProblemDetails
// @Router /api/rates [get]
func GetRates(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table := exchangeSvc.Current()
		if table == nil {
			return common.ProblemDetailsJSON(c, "Rates not loaded yet", exchange.ErrRatesUnavailable)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched successfully", ToTableResponse(table))
	}
}

// RefreshRates fetches the rates again
// @Summary Refresh rates
// @Description Fetch the rates again, optionally for another base
// @Tags rates
// @Produce json
// @Param base query string false "Base currency"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/rates/refresh [post]
func RefreshRates(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.QueryAndValidate[RefreshRequest](c)
		if input == nil {
			return err
		}
		table, err := exchangeSvc.FetchRates(c.UserContext(), input.Base)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to refresh rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed successfully", ToTableResponse(table))
	}
}

// Convert converts an amount given in the query string
// @Summary Convert amount
// @Description Convert an amount between two currencies of the current table
// @Tags rates
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/convert [get]
func Convert(exchangeSvc *exchangesvc.Service, conversionSvc *conversion.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.QueryAndValidate[ConvertRequest](c)
		if input == nil {
			return err
		}
		return convert(c, exchangeSvc, conversionSvc, input)
	}
}

// ConvertBody converts an amount given in a JSON body
// @Summary Convert amount
// @Description Convert an amount between two currencies of the current table
// @Tags rates
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/convert [post]
func ConvertBody(exchangeSvc *exchangesvc.Service, conversionSvc *conversion.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConvertRequest](c)
		if input == nil {
			return err
		}
		return convert(c, exchangeSvc, conversionSvc, input)
	}
}

func convert(
	c *fiber.Ctx,
	exchangeSvc *exchangesvc.Service,
	conversionSvc *conversion.Service,
	input *ConvertRequest,
) error {
	result, err := conversionSvc.Convert(exchangeSvc.Current(), input.toDomain())
	if err != nil {
		return common.ProblemDetailsJSON(c, "Conversion failed", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Conversion successful", result)
}
