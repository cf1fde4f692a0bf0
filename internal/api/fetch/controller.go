package fetch

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Trawl/internal/fetcher"
	"github.com/labstack/echo/v4"
)

type (
	// FetchRequest is the payload for POST /fetch.
	FetchRequest struct {
		URL string `json:"url" validate:"required"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}

	Service interface {
		FetchVideosFromURL(ctx context.Context, url string) (*fetcher.FetchResult, error)
	}

	Controller struct {
		validate *validator.Validate
		service  Service
	}
)

func New(validate *validator.Validate, service Service) *Controller {
	return &Controller{validate: validate, service: service}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/fetch", controller.fetch)
}

// fetch runs the discovery pipeline for the URL in the request body and
// returns the full result envelope. A malformed or missing URL is the
// caller's fault (400); anything else escaping the pipeline is a 500 with
// the error string in the body.
func (controller *Controller) fetch(ec echo.Context) error {
	var request FetchRequest
	if err := ec.Bind(&request); err != nil {
		return ec.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
	}

	request.URL = strings.TrimSpace(request.URL)
	if err := controller.validate.Struct(request); err != nil {
		return ec.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
	}

	result, err := controller.service.FetchVideosFromURL(ec.Request().Context(), request.URL)
	if err != nil {
		if errors.Is(err, fetcher.ErrInvalidURL) {
			return ec.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return ec.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return ec.JSON(http.StatusOK, result)
}
