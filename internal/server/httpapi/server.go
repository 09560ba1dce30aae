// Package httpapi exposes the REST surface of the server over chi. Handlers
// parse and validate input at the boundary, delegate to the service layer,
// and let the webutil adapter translate typed errors into responses.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jmoon-dev/resumehub/internal/logging"
	"github.com/jmoon-dev/resumehub/internal/server/config"
	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// userService is the slice of the user service the HTTP layer needs.
type userService interface {
	SignUp(ctx context.Context, in services.SignUpInput) error
	SignIn(ctx context.Context, in services.SignInInput) (string, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// resumeService is the slice of the resume service the HTTP layer needs.
type resumeService interface {
	List(ctx context.Context, orderKey, orderValue string) ([]*models.Resume, error)
	Get(ctx context.Context, id int64) (*models.Resume, error)
	Create(ctx context.Context, actor *models.User, title, introduction string) (*models.Resume, error)
	Patch(ctx context.Context, actor *models.User, id int64, patch *models.ResumePatch) error
	Delete(ctx context.Context, actor *models.User, id int64) error
}

type HTTPServer struct {
	address      string
	users        userService
	resumes      resumeService
	logger       logging.Logger
	jwtSecret    []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us userService, rs resumeService) (*HTTPServer, error) {
	return &HTTPServer{
		address:      cfg.EndpointAddrHTTP,
		logger:       l.With("module", "http_server"),
		users:        us,
		resumes:      rs,
		jwtSecret:    []byte(cfg.SecretKey),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
