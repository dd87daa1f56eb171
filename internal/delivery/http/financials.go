package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupFinancials(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/companies/:ticker", h.GetCompany)
		v1.GET("/financials/:ticker", h.GetFinancials)
		v1.GET("/financials/:ticker/yoy", h.GetYoY)
		v1.GET("/financials/:ticker/qoq", h.GetQoQ)
		v1.GET("/financials/:ticker/standalone", h.GetStandalone)
		v1.GET("/forecasts/:ticker", h.GetForecasts)
		v1.GET("/announcements/:ticker", h.GetAnnouncements)
	}
}

// tickerParam validates the path ticker: four digits, the standard TSE code.
func tickerParam(c echo.Context) (string, bool) {
	ticker := c.Param("ticker")
	if len(ticker) != 4 {
		return "", false
	}
	for _, r := range ticker {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return ticker, true
}

func respondServiceError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrCompanyNotFound) {
		response := dto.NewNotFoundResponse("company not found")
		return c.JSON(response.Code, response)
	}
	response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetCompany(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	company, err := h.service.FinancialService.GetCompany(c.Request().Context(), ticker)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", company)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetFinancials(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	param := model.GetFinancialRecordsParam{Ticker: ticker}
	if year := c.QueryParam("fiscal_year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			response := dto.NewBadRequestResponse("fiscal_year must be an integer")
			return c.JSON(response.Code, response)
		}
		param.FiscalYear = &y
	}
	if quarter := c.QueryParam("quarter"); quarter != "" {
		if !dto.Quarter(quarter).IsValid() {
			response := dto.NewBadRequestResponse("quarter must be one of Q1, Q2, Q3, Q4, FY")
			return c.JSON(response.Code, response)
		}
		param.Quarter = &quarter
	}

	records, err := h.service.FinancialService.GetFinancials(c.Request().Context(), param)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", records)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetYoY(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	rows, err := h.service.FinancialService.GetYoY(c.Request().Context(), ticker)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", rows)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetQoQ(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	rows, err := h.service.FinancialService.GetQoQ(c.Request().Context(), ticker)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", rows)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetStandalone(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	rows, err := h.service.FinancialService.GetStandalone(c.Request().Context(), ticker)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", rows)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetForecasts(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	forecasts, err := h.service.FinancialService.GetForecasts(c.Request().Context(), ticker)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", forecasts)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetAnnouncements(c echo.Context) error {
	ticker, ok := tickerParam(c)
	if !ok {
		response := dto.NewBadRequestResponse("ticker must be a 4-digit code")
		return c.JSON(response.Code, response)
	}

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 500 {
			response := dto.NewBadRequestResponse("limit must be between 1 and 500")
			return c.JSON(response.Code, response)
		}
		limit = parsed
	}

	announcements, err := h.service.FinancialService.GetAnnouncements(c.Request().Context(), ticker, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	response := dto.NewSuccessResponse("OK", announcements)
	return c.JSON(response.Code, response)
}
