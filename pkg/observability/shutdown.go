package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultShutdownTimeout applies when Shutdown is given no timeout
const DefaultShutdownTimeout = 30 * time.Second

// ShutdownFunc releases a resource during shutdown
type ShutdownFunc func(context.Context) error

// Shutdown stops server gracefully and then runs funcs in order, all within
// timeout. Every func runs even if an earlier step failed; the errors are
// joined.
func Shutdown(logger *logrus.Logger, server *http.Server, timeout time.Duration, funcs ...ShutdownFunc) error {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if server != nil {
		logger.Info("Shutting down HTTP server")
		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("HTTP server shutdown error")
			errs = append(errs, fmt.Errorf("HTTP server shutdown failed: %w", err))
		}
	}

	for i, fn := range funcs {
		if fn == nil {
			continue
		}
		if err := fn(ctx); err != nil {
			logger.WithError(err).Errorf("Shutdown function %d failed", i)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}
