package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/usecase"
)

func RegisterRestAPI(injector *do.Injector, e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		type response struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		return c.JSON(http.StatusOK, &response{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	e.GET("/recent", func(c echo.Context) error {
		// unparseable limits fall back to the default, like a missing one
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		usecase := do.MustInvoke[usecase.ListRecentRecordsUsecase](injector)
		records, err := usecase.Execute(c.Request().Context(), limit)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, "Failed to fetch records")
		}

		type response struct {
			Data  []*entity.Record `json:"data"`
			Count int              `json:"count"`
		}
		result := &response{Data: make([]*entity.Record, len(records)), Count: len(records)}
		copy(result.Data, records)

		return c.JSON(http.StatusOK, result)
	})
}
