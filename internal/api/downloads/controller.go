package downloads

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Trawl/internal/download"
	"github.com/labstack/echo/v4"
)

type (
	// DownloadRequest is the payload for POST /download_video.
	DownloadRequest struct {
		URL      string `json:"url" validate:"required"`
		Quality  string `json:"quality"`
		FormatID string `json:"format_id"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}

	ListResponse struct {
		Downloads []download.Entry `json:"downloads"`
	}

	Service interface {
		DownloadVideo(ctx context.Context, url string, quality string, formatID string) *download.Result
		ListDownloads() []download.Entry
		FilePath(filename string) (string, error)
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
	eg.POST("/download_video", controller.download)
	eg.GET("/downloads", controller.list)
	eg.GET("/download_file/:filename", controller.serveFile)
	eg.GET("/thumbnail/:filename", controller.serveThumbnail)
}

// download materialises the requested video on local storage. The result
// envelope is returned with a 200 regardless of outcome; a failed
// download is flagged inside the envelope rather than via the HTTP
// status, so clients handle one response shape.
func (controller *Controller) download(ec echo.Context) error {
	var request DownloadRequest
	if err := ec.Bind(&request); err != nil {
		return ec.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
	}

	request.URL = strings.TrimSpace(request.URL)
	if err := controller.validate.Struct(request); err != nil {
		return ec.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
	}

	quality := request.Quality
	if quality == "" {
		quality = "best"
	}

	result := controller.service.DownloadVideo(ec.Request().Context(), request.URL, quality, request.FormatID)
	return ec.JSON(http.StatusOK, result)
}

func (controller *Controller) list(ec echo.Context) error {
	return ec.JSON(http.StatusOK, ListResponse{Downloads: controller.service.ListDownloads()})
}

// serveFile streams a previously downloaded video as an attachment.
func (controller *Controller) serveFile(ec echo.Context) error {
	path, err := controller.service.FilePath(ec.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	return ec.Attachment(path, ec.Param("filename"))
}

// serveThumbnail serves a generated thumbnail inline for embedding.
func (controller *Controller) serveThumbnail(ec echo.Context) error {
	path, err := controller.service.FilePath(ec.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	return ec.File(path)
}
