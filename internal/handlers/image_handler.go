package handlers

import (
	"context"
	"net/http"
	"path"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// ImageHandler proxies product and page images from object storage
type ImageHandler struct {
	imageService services.ImageService
	logger       logrus.FieldLogger
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageService services.ImageService, logger logrus.FieldLogger) *ImageHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ImageHandler{
		imageService: imageService,
		logger:       logger.WithField("handler", "images"),
	}
}

// @Summary Product image
// @Description Stream a product image from the product bucket
// @Tags images
// @Produce png,jpeg,svg
// @Param filename path string true "Image filename"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /image/{filename} [get]
func (h *ImageHandler) HandleProductImage(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return h.handle(ctx, req, services.ImageKindProduct)
}

// @Summary Page image
// @Description Stream a page image from the page bucket
// @Tags images
// @Produce png,jpeg,svg
// @Param filename path string true "Image filename"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /page-image/{filename} [get]
func (h *ImageHandler) HandlePageImage(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return h.handle(ctx, req, services.ImageKindPage)
}

func (h *ImageHandler) handle(ctx context.Context, req *lambda.Request, kind services.ImageKind) (*lambda.Response, error) {
	switch req.Method {
	case http.MethodOptions:
		return PreflightResponse(methodsImages), nil
	case http.MethodGet:
	default:
		return MethodNotAllowed(methodsImages), nil
	}

	img, err := h.imageService.GetImage(ctx, kind, imageFilename(req))
	if err != nil {
		return errorResponse(h.logger, err), nil
	}

	return BinaryResponse(img.ContentType, img.CacheControl, img.Data), nil
}

// imageFilename prefers the routed path parameter and falls back to the last
// path segment for functions invoked without one.
func imageFilename(req *lambda.Request) string {
	if name := req.Param("filename"); name != "" {
		return name
	}
	name := path.Base(req.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}
