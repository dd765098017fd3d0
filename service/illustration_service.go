package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"policy-illustrator/domain"
	"policy-illustrator/repository"
)

type IllustrationOptions struct {
	Solver         SolverConfig
	CacheTTL       time.Duration
	DefaultHorizon int
	MaxHorizon     int
}

func DefaultIllustrationOptions() IllustrationOptions {
	return IllustrationOptions{
		Solver:         DefaultSolverConfig,
		CacheTTL:       time.Hour,
		DefaultHorizon: DefaultHorizonYears,
		MaxHorizon:     MaxHorizonYears,
	}
}

type IllustrationService struct {
	catalog *domain.Catalog
	repo    repository.IllustrationRepository
	cache   repository.CacheRepository
	log     *zap.Logger
	opts    IllustrationOptions
}

// NewIllustrationService wires the projection pipeline to an injected
// catalog. repo and cache may be nil.
func NewIllustrationService(
	catalog *domain.Catalog,
	repo repository.IllustrationRepository,
	cache repository.CacheRepository,
	log *zap.Logger,
	opts IllustrationOptions,
) *IllustrationService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxHorizon <= 0 {
		opts.MaxHorizon = MaxHorizonYears
	}
	if opts.DefaultHorizon <= 0 {
		opts.DefaultHorizon = DefaultHorizonYears
	}
	if opts.Solver.MaxIterations <= 0 {
		opts.Solver = DefaultSolverConfig
	}
	return &IllustrationService{
		catalog: catalog,
		repo:    repo,
		cache:   cache,
		log:     log,
		opts:    opts,
	}
}

func (s *IllustrationService) Catalog() *domain.Catalog {
	return s.catalog
}

// resolved is a request after defaults were applied and every field checked.
type resolved struct {
	product    domain.PolicyProduct
	req        domain.ProjectionRequest
	declared   float64
	guaranteed float64
}

func checkRate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxRate {
		return invalidf("%s must be a fraction between 0 and %.2f, got %v", name, MaxRate, v)
	}
	return nil
}

// Validate checks req against its product without running the projection.
func (s *IllustrationService) Validate(req domain.ProjectionRequest) error {
	_, err := s.resolve(req)
	return err
}

// resolve applies defaults and checks req against its product. Pay-term
// membership is checked here, before any face amount is computed.
func (s *IllustrationService) resolve(req domain.ProjectionRequest) (resolved, error) {
	product, ok := s.catalog.Get(req.Product)
	if !ok {
		return resolved{}, fmt.Errorf("%w: %q", ErrUnknownProduct, req.Product)
	}

	if math.IsNaN(req.Budget) || req.Budget <= 0 {
		return resolved{}, invalidf("budget must be positive")
	}
	if req.Budget > MaxBudget {
		return resolved{}, invalidf("budget exceeds maximum of %.2f", MaxBudget)
	}
	if !product.AllowsAge(req.Age) {
		return resolved{}, invalidf("age %d outside %s issue ages %d-%d",
			req.Age, product.Name, product.MinIssueAge, product.MaxIssueAge)
	}
	if req.Sex != "" && req.Sex != domain.SexMale && req.Sex != domain.SexFemale {
		return resolved{}, invalidf("unknown sex %q", req.Sex)
	}
	if !product.AllowsSex(req.Sex) {
		return resolved{}, invalidf("%s is not offered to sex %q", product.Name, req.Sex)
	}
	if !product.AllowsPayTerm(req.PayTerm) {
		return resolved{}, fmt.Errorf("%w: %s does not offer a %d-year pay term (allowed %v)",
			ErrInvalidPayTerm, product.Name, req.PayTerm, product.PayTerms)
	}
	if _, priced := TermFactor(req.PayTerm); !priced {
		return resolved{}, fmt.Errorf("%w: no term factor for a %d-year pay term",
			ErrInvalidPayTerm, req.PayTerm)
	}
	if !req.CreditingMode.Valid() {
		return resolved{}, invalidf("crediting mode is required")
	}

	declared := product.DeclaredRate
	if req.DeclaredRate != nil {
		declared = *req.DeclaredRate
	}
	guaranteed := product.GuaranteedRate
	if req.GuaranteedRate != nil {
		guaranteed = *req.GuaranteedRate
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"declared_rate", declared},
		{"guaranteed_rate", guaranteed},
		{"load_rate", req.LoadRate},
	} {
		if err := checkRate(r.name, r.v); err != nil {
			return resolved{}, err
		}
	}

	if req.HorizonYears == 0 {
		req.HorizonYears = s.opts.DefaultHorizon
	}
	if req.HorizonYears < 1 || req.HorizonYears > s.opts.MaxHorizon {
		return resolved{}, invalidf("horizon must be between 1 and %d years", s.opts.MaxHorizon)
	}
	if req.HorizonYears < req.PayTerm {
		return resolved{}, invalidf("horizon %d is shorter than pay term %d", req.HorizonYears, req.PayTerm)
	}

	req.DeclaredRate = &declared
	req.GuaranteedRate = &guaranteed
	return resolved{product: product, req: req, declared: declared, guaranteed: guaranteed}, nil
}

// Illustrate runs the full projection for req. Results are cached by a
// fingerprint of the resolved request; cache and history failures are only
// logged.
func (s *IllustrationService) Illustrate(
	ctx context.Context,
	req domain.ProjectionRequest,
) (domain.ProjectionResult, error) {
	in, err := s.resolve(req)
	if err != nil {
		return domain.ProjectionResult{}, err
	}

	key := s.cacheKey(in)
	if result, ok := s.fromCache(ctx, key); ok {
		return result, nil
	}

	result, err := s.compute(in)
	if err != nil {
		return domain.ProjectionResult{}, err
	}

	if !result.IRRConverged {
		s.log.Warn("irr estimate is approximate",
			zap.String("product", result.Product),
			zap.Int("pay_term", result.PayTerm),
			zap.Int("iterations", result.IRRIterations),
			zap.Float64("irr", result.IRR),
			zap.Error(ErrNonConvergence),
		)
	}

	s.toCache(ctx, key, result)
	if s.repo != nil {
		if err := s.repo.Save(ctx, in.req, result); err != nil {
			s.log.Warn("failed to save illustration", zap.Error(err))
		}
	}
	return result, nil
}

func (s *IllustrationService) compute(in resolved) (domain.ProjectionResult, error) {
	req := in.req

	face := SuggestFaceAmount(req.Budget, in.product.BasePremPer10k, req.Age, req.PayTerm)
	if face < in.product.MinFaceUSD {
		return domain.ProjectionResult{}, &InsufficientBudgetError{
			Product:    in.product.Name,
			FaceAmount: face,
			MinFace:    in.product.MinFaceUSD,
		}
	}

	premium := req.Budget
	cashValues, bump := ProjectCashValue(
		premium,
		req.PayTerm,
		req.HorizonYears,
		in.declared,
		in.guaranteed,
		req.LoadRate,
		req.CreditingMode,
	)
	deathBenefits := DeathBenefitSeries(face, cashValues, bump)
	flows := BuildCashflows(premium, req.PayTerm, req.HorizonYears, deathBenefits)
	irr := SolveIRR(flows, s.opts.Solver)

	return domain.ProjectionResult{
		Product:       in.product.Name,
		PayTerm:       req.PayTerm,
		HorizonYears:  req.HorizonYears,
		FaceAmount:    face,
		AnnualPremium: roundCurrency(premium),
		TotalPremium:  totalPremium(premium, req.PayTerm),
		EffectiveRate: EffectiveRate(in.declared, in.guaranteed, req.LoadRate),
		BumpRatio:     bump,
		CashValues:    cashValues,
		DeathBenefits: deathBenefits,
		Cashflows:     flows,
		IRR:           irr.Rate,
		IRRIterations: irr.Iterations,
		IRRConverged:  irr.Converged,
	}, nil
}

// cacheKey fingerprints everything that affects the result, including the
// solver settings.
func (s *IllustrationService) cacheKey(in resolved) string {
	payload, _ := json.Marshal(struct {
		Req     domain.ProjectionRequest
		Base    float64
		MinFace int64
		Solver  SolverConfig
	}{in.req, in.product.BasePremPer10k, in.product.MinFaceUSD, s.opts.Solver})
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}

func (s *IllustrationService) fromCache(ctx context.Context, key string) (domain.ProjectionResult, bool) {
	if s.cache == nil {
		return domain.ProjectionResult{}, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return domain.ProjectionResult{}, false
	}
	if !ok {
		return domain.ProjectionResult{}, false
	}
	var result domain.ProjectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return domain.ProjectionResult{}, false
	}
	s.log.Debug("illustration cache hit", zap.String("key", key))
	return result, true
}

func (s *IllustrationService) toCache(ctx context.Context, key string, result domain.ProjectionResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		s.log.Warn("failed to encode illustration for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.opts.CacheTTL); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
