package service

import (
	"github.com/javy001/trainingplanner/internal/adapters/repository"
	"github.com/javy001/trainingplanner/internal/adapters/source"
	"github.com/javy001/trainingplanner/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the workout store backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource sets the external workout source.
func WithSource(provider source.Provider) Option {
	return func(s *Service) {
		if provider != nil {
			s.source = provider
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithBridgeName sets the display name of the import bridge used in
// workout annotations.
func WithBridgeName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.bridgeName = name
		}
	}
}

// WithLaunchImportDays sets how many recent days are imported on
// startup. Zero disables the launch import.
func WithLaunchImportDays(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.launchImportDays = days
		}
	}
}

// WithDurationTolerance sets the relative duration tolerance used when
// matching external records to local workouts.
func WithDurationTolerance(tol float64) Option {
	return func(s *Service) {
		if tol > 0 {
			s.durationTolerance = tol
		}
	}
}

// WithDistanceTolerance sets the absolute distance tolerance in miles
// used for both deduplication and matching.
func WithDistanceTolerance(tol float64) Option {
	return func(s *Service) {
		if tol > 0 {
			s.distanceTolerance = tol
		}
	}
}
