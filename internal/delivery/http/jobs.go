package http

import (
	"net/http"
	"strconv"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupJobs(base *echo.Group) {
	v1 := base.Group("/v1/jobs")
	{
		v1.GET("", h.ListJobs)
		v1.POST("/run", h.RunJobs)
		v1.POST("/:id/run", h.RunJob)
	}
}

func (h *HttpAPIHandler) ListJobs(c echo.Context) error {
	param := model.GetJobParam{}
	if active := c.QueryParam("is_active"); active != "" {
		isActive := active == "true"
		param.IsActive = &isActive
	}

	jobs, err := h.service.SchedulerService.GetJobSchedule(c.Request().Context(), param)
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}
	response := dto.NewSuccessResponse("OK", jobs)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) RunJobs(c echo.Context) error {
	response := dto.NewBaseResponse(http.StatusOK, "Start running jobs", nil)
	if err := h.service.SchedulerService.Execute(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) RunJob(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response := dto.NewBadRequestResponse("id must be a positive integer")
		return c.JSON(response.Code, response)
	}

	if err := h.service.SchedulerService.RunJobTask(c.Request().Context(), uint(id)); err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}
	response := dto.NewSuccessResponse("Job triggered", nil)
	return c.JSON(response.Code, response)
}
