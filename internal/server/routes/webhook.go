package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/config"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/usecase"
	"github.com/yz4230/repowatch/internal/webhook"
)

func RegisterWebhook(injector *do.Injector, e *echo.Echo) {
	cfg := do.MustInvoke[config.Config](injector)

	e.POST("/webhook", func(c echo.Context) error {
		req := c.Request()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr
			}
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return echo.ErrStatusRequestEntityTooLarge
			}
			return errorJSON(c, http.StatusBadRequest, "No payload received")
		}

		ingest := do.MustInvoke[usecase.IngestWebhookUsecase](injector)
		result, err := ingest.Execute(req.Context(), &usecase.Delivery{
			Event:       req.Header.Get(webhook.EventHeader),
			Signature:   req.Header.Get(webhook.SignatureHeader),
			DeliveryID:  req.Header.Get(webhook.DeliveryHeader),
			ContentType: req.Header.Get(echo.HeaderContentType),
			Body:        body,
		})
		if err != nil {
			status, message := webhookError(err)
			return errorJSON(c, status, message)
		}

		if !result.Supported {
			return c.JSON(http.StatusOK, map[string]string{
				"message": fmt.Sprintf("Event type %s not supported", result.EventType),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"message":    "Webhook processed successfully",
			"id":         result.Record.ID.String(),
			"event_type": result.EventType,
		})
	}, middleware.BodyLimit(cfg.Webhook.MaxBody))
}

func webhookError(err error) (int, string) {
	var validationErr *webhook.ValidationError
	switch {
	case errors.Is(err, entity.ErrSignatureInvalid):
		return http.StatusUnauthorized, "Invalid signature"
	case errors.Is(err, webhook.ErrMissingEvent):
		return http.StatusBadRequest, "Missing X-GitHub-Event header"
	case errors.Is(err, entity.ErrMalformedRequest):
		return http.StatusBadRequest, "No payload received"
	case errors.Is(err, entity.ErrExtractionFailed):
		return http.StatusBadRequest, "Failed to extract data from payload"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "Invalid data: " + validationErr.Reason
	case errors.Is(err, entity.ErrStoreFailure):
		return http.StatusInternalServerError, "Failed to store data"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
