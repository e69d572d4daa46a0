package pyroscope

import (
	"context"
	"strings"

	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/fx"
)

type Service struct {
	cfg      *config.Configuration
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks starts the profiler with the app and stops it on shutdown
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start()
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop()
		},
	})
}

// NewPyroscopeService creates a new Pyroscope service
func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// IsEnabled returns whether Pyroscope profiling is enabled
func (s *Service) IsEnabled() bool {
	return s != nil && s.cfg.Pyroscope.Enabled
}

// Start begins continuous profiling. It is a no-op when disabled.
func (s *Service) Start() error {
	if !s.IsEnabled() {
		s.logger.Info("Pyroscope profiling is disabled")
		return nil
	}

	cfg := s.cfg.Pyroscope
	profileTypes := s.getProfileTypes()

	pyroscopeConfig := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		ProfileTypes:    profileTypes,
		SampleRate:      cfg.SampleRate,
		DisableGCRuns:   cfg.DisableGCRuns,
		Logger:          s,
		Tags: map[string]string{
			"mode": string(s.cfg.Deployment.Mode),
		},
	}

	if cfg.BasicAuthUser != "" {
		pyroscopeConfig.BasicAuthUser = cfg.BasicAuthUser
		pyroscopeConfig.BasicAuthPassword = cfg.BasicAuthPass
	}

	profiler, err := pyroscope.Start(pyroscopeConfig)
	if err != nil {
		s.logger.Errorw("failed to initialize pyroscope", "error", err)
		return err
	}

	s.logger.Infow("pyroscope profiling started",
		"application_name", cfg.ApplicationName,
		"server_address", cfg.ServerAddress,
		"has_basic_auth", cfg.BasicAuthUser != "",
		"profile_types", profileTypes,
	)
	s.profiler = profiler
	return nil
}

// Stop flushes and stops the profiler if it was started.
func (s *Service) Stop() error {
	if s.profiler == nil {
		return nil
	}
	s.logger.Info("Stopping Pyroscope profiling")
	return s.profiler.Stop()
}

// Debugf is dropped; the profiler is chatty at debug level.
func (s *Service) Debugf(_ string, _ ...interface{}) {}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[Pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[Pyroscope] "+format, args...)
}

var profileTypeNames = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

// getProfileTypes converts configured names, falling back to CPU and memory
func (s *Service) getProfileTypes() []pyroscope.ProfileType {
	if len(s.cfg.Pyroscope.ProfileTypes) == 0 {
		return []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
		}
	}

	var types []pyroscope.ProfileType
	for _, name := range s.cfg.Pyroscope.ProfileTypes {
		t, ok := profileTypeNames[strings.ToLower(name)]
		if !ok {
			s.logger.Warnw("unknown profile type", "type", name)
			continue
		}
		types = append(types, t)
	}
	return types
}

// TagWrapper runs fn with profiling labels attached.
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}

	var labelPairs []string
	for key, value := range labels {
		labelPairs = append(labelPairs, key, value)
	}

	pyroscope.TagWrapper(ctx, pyroscope.Labels(labelPairs...), fn)
}
