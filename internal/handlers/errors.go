package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// errorResponse converts a service failure into its JSON response.
// Unclassified errors are treated as internal and their message is echoed.
func errorResponse(logger logrus.FieldLogger, err error) *lambda.Response {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		svcErr = services.NewInternalError(err)
	}

	entry := logger.WithFields(logrus.Fields{
		"kind":   svcErr.Kind,
		"status": svcErr.StatusCode(),
	})
	if svcErr.Err != nil {
		entry = entry.WithField("error", svcErr.Err.Error())
	}
	if svcErr.StatusCode() >= 500 {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	return ErrorJSON(svcErr.StatusCode(), svcErr.Message)
}

// Recover wraps h so a panic becomes a 500 carrying the panic message
func Recover(logger logrus.FieldLogger, h lambda.HandlerFunc) lambda.HandlerFunc {
	return func(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"method": req.Method,
					"path":   req.Path,
					"panic":  fmt.Sprint(r),
				}).Error("Recovered from panic")

				resp = errorResponse(logger, services.NewInternalError(fmt.Errorf("%v", r)))
				err = nil
			}
		}()
		return h(ctx, req)
	}
}
