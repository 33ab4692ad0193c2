// Package health reports whether the service's dependencies answer.
package health

import (
	"context"
	"errors"
	"fmt"
)

// StatusOK is the per-check value of a passing dependency.
const StatusOK = "ok"

// Checker is one dependency probe, e.g. the Postgres pool.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report lists every check by name: StatusOK or the error text.
type Report struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ReadinessUseCase: Ready для простых вызовов, Report для ответа /ready.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
	Report(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Report runs every checker, so one failing dependency does not hide another.
func (s *service) Report(ctx context.Context) Report {
	r := Report{Ready: true, Checks: make(map[string]string, len(s.checkers))}
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			r.Ready = false
			r.Checks[ch.Name()] = err.Error()
			continue
		}
		if _, seen := r.Checks[ch.Name()]; !seen {
			r.Checks[ch.Name()] = StatusOK
		}
	}
	return r
}

// Ready joins the failures as "<name>: <error>".
func (s *service) Ready(ctx context.Context) error {
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}
