// Package service dispatches solve, preview and reachability requests for a
// named weapon or an inline profile.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/xtding233/ballistics/internal/armory"
	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/metrics"
	"github.com/xtding233/ballistics/internal/trajectory"
)

// Request limits.
const (
	MaxSamples = 10000
	MaxTrials  = 200000
)

// ErrBadRequest marks a request rejected before any solve ran.
var ErrBadRequest = errors.New("bad request")

// Armory is the weapon catalog the service reads from.
type Armory interface {
	armory.Resolver
	Weapons() ([]string, error)
}

var _ Armory = (*armory.Loader)(nil)

type Service struct {
	armory  Armory
	metrics *metrics.Recorder
	log     *slog.Logger
}

// New wires a service. m may be nil; log defaults to slog.Default().
func New(a Armory, m *metrics.Recorder, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{armory: a, metrics: m, log: log}
}

// Solve resolves the weapon and computes the launch for the target.
// An unreachable target is a normal response with Outcome out_of_range.
func (s *Service) Solve(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	resp, _, err := s.solve(ctx, req)
	return resp, err
}

// Sample is Solve plus the predicted path at the resolved sample count.
func (s *Service) Sample(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	resp, sol, err := s.solve(ctx, req)
	if err != nil || resp.Outcome != OutcomeHit {
		return resp, err
	}
	n := trajectory.DefaultSamples
	if sol.samples > 0 {
		n = sol.samples
	}
	pts, err := trajectory.Sample(sol.Solution, n)
	if err != nil {
		return SolveResponse{}, err
	}
	resp.Points = make([]Vec3, len(pts))
	for i, p := range pts {
		resp.Points[i] = vec3(p)
	}
	s.metrics.SamplePoints(len(pts))
	return resp, nil
}

type resolved struct {
	ballistic.Solution
	samples int
}

func (s *Service) solve(ctx context.Context, req SolveRequest) (SolveResponse, resolved, error) {
	if err := ctx.Err(); err != nil {
		return SolveResponse{}, resolved{}, err
	}
	if req.Samples != nil && *req.Samples > MaxSamples {
		return SolveResponse{}, resolved{}, fmt.Errorf("%w: samples above %d", ErrBadRequest, MaxSamples)
	}

	params, err := s.resolve(req.Weapon, req.Variant, req.Profile, req.Gravity, req.Samples)
	if err != nil {
		s.reject(req.Weapon, "", err)
		return SolveResponse{}, resolved{}, err
	}
	mode := string(params.Profile.Mode())
	resp := SolveResponse{
		Weapon:  req.Weapon,
		Variant: req.Variant,
		Version: params.Version,
		Mode:    mode,
	}

	geo := ballistic.Geometry{Origin: req.Origin.r3(), Target: req.Target.r3(), Gravity: params.Gravity}
	sol, err := ballistic.Solve(geo, params.Profile)
	switch {
	case errors.Is(err, ballistic.ErrOutOfRange):
		s.log.Debug("target out of range", "weapon", req.Weapon, "mode", mode, "err", err)
		s.metrics.Solve(mode, "", metrics.OutcomeOutOfRange, 0, 0)
		resp.Outcome = OutcomeOutOfRange
		return resp, resolved{}, nil
	case err != nil:
		s.reject(req.Weapon, mode, err)
		return SolveResponse{}, resolved{}, err
	}

	s.metrics.Solve(mode, string(sol.Branch), metrics.OutcomeHit, sol.FlightTime, sol.Apex())
	v := vec3(sol.Velocity)
	impact := vec3(sol.Impact())
	resp.Outcome = OutcomeHit
	resp.Branch = string(sol.Branch)
	resp.Velocity = &v
	resp.Speed = sol.Speed()
	resp.ElevationDeg = sol.Elevation() * 180 / math.Pi
	resp.FlightTime = sol.FlightTime
	resp.Apex = sol.Apex()
	resp.Impact = &impact
	return resp, resolved{Solution: sol, samples: params.Samples}, nil
}

// Reach runs a reachability sweep for the resolved profile.
func (s *Service) Reach(ctx context.Context, req ReachRequest) (ReachResponse, error) {
	if err := ctx.Err(); err != nil {
		return ReachResponse{}, err
	}
	if req.Trials < 1 || req.Trials > MaxTrials {
		return ReachResponse{}, fmt.Errorf("%w: trials must be in [1,%d]", ErrBadRequest, MaxTrials)
	}
	params, err := s.resolve(req.Weapon, req.Variant, req.Profile, req.Gravity, nil)
	if err != nil {
		s.reject(req.Weapon, "", err)
		return ReachResponse{}, err
	}

	rng := ballistic.DefaultRNG()
	if req.Seed != nil {
		rng = ballistic.NewSeededRNG(*req.Seed)
	}
	stats, err := ballistic.RunReachability(ballistic.ReachParams{
		Profile:   params.Profile,
		Origin:    req.Origin.r3(),
		Gravity:   params.Gravity,
		MaxRadius: req.MaxRadius,
		MinRise:   req.MinRise,
		MaxRise:   req.MaxRise,
	}, req.Trials, rng)
	if err != nil {
		s.reject(req.Weapon, string(params.Profile.Mode()), err)
		return ReachResponse{}, err
	}
	s.metrics.ReachTrials(req.Trials)
	return ReachResponse{
		Weapon:     req.Weapon,
		Variant:    req.Variant,
		Mode:       string(params.Profile.Mode()),
		ReachStats: stats,
	}, nil
}

// Weapon returns the resolved record for name (and optional variant).
func (s *Service) Weapon(ctx context.Context, name, variant string) (WeaponInfo, error) {
	if err := ctx.Err(); err != nil {
		return WeaponInfo{}, err
	}
	if name == "" {
		// an empty name would resolve the shared defaults
		return WeaponInfo{}, fmt.Errorf("%w: empty name", armory.ErrUnknownWeapon)
	}
	raw, params, err := s.armory.Resolve(name, variant, armory.Overrides{})
	if err != nil {
		return WeaponInfo{}, err
	}
	info := WeaponInfo{
		Name:    name,
		Variant: variant,
		Version: params.Version,
		Mode:    string(params.Profile.Mode()),
		Gravity: params.Gravity.Y,
		Samples: params.Samples,
		Notes:   raw.Notes,
	}
	switch p := params.Profile.(type) {
	case ballistic.ArcHeight:
		apex, flatten := p.ApexHeight(), p.Flatten()
		info.ApexHeight, info.Flatten = &apex, &flatten
	case ballistic.FixedSpeed:
		speed := p.InitialSpeed()
		reach := ballistic.MaxLevelRange(speed, -params.Gravity.Y)
		info.InitialSpeed, info.MaxLevelRange = &speed, &reach
	}
	return info, nil
}

// Weapons lists the weapon names in the catalog.
func (s *Service) Weapons(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.armory.Weapons()
}

func (s *Service) resolve(weapon, variant string, spec *ProfileSpec, gravity *float64, samples *int) (armory.Params, error) {
	o := armory.Overrides{Gravity: gravity, Samples: samples}
	if spec != nil {
		o.Mode = spec.Mode
		o.ApexHeight = spec.ApexHeight
		o.Flatten = spec.Flatten
		o.InitialSpeed = spec.InitialSpeed
	}
	if weapon == "" && spec == nil {
		return armory.Params{}, fmt.Errorf("%w: weapon or profile is required", ErrBadRequest)
	}
	_, params, err := s.armory.Resolve(weapon, variant, o)
	return params, err
}

func (s *Service) reject(weapon, mode string, err error) {
	s.log.Debug("solve rejected", "weapon", weapon, "mode", mode, "err", err)
	if mode != "" {
		s.metrics.Solve(mode, "", metrics.OutcomeRejected, 0, 0)
	}
}
