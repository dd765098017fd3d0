package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"policy-illustrator/domain"
)

type PayTermComparisonService struct {
	illustrations *IllustrationService
	log           *zap.Logger
}

func NewPayTermComparisonService(illustrations *IllustrationService, log *zap.Logger) *PayTermComparisonService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PayTermComparisonService{illustrations: illustrations, log: log}
}

// Compare illustrates req under every pay term the product offers and ranks
// the options by IRR, best first. req.PayTerm is ignored. Pay terms the
// budget cannot fund, or that do not fit the horizon, are kept as skipped
// options at the end of the list.
func (s *PayTermComparisonService) Compare(
	ctx context.Context,
	req domain.ProjectionRequest,
) (domain.PayTermComparison, error) {
	product, ok := s.illustrations.Catalog().Get(req.Product)
	if !ok {
		return domain.PayTermComparison{}, fmt.Errorf("%w: %q", ErrUnknownProduct, req.Product)
	}
	if len(product.PayTerms) == 0 {
		return domain.PayTermComparison{}, fmt.Errorf("%w: %s has no pay terms", ErrInvalidPayTerm, product.Name)
	}

	// Fields shared by every option are checked once, against the shortest
	// term, so a bad request fails instead of skipping every option.
	base := req
	base.PayTerm = slices.Min(product.PayTerms)
	if err := s.illustrations.Validate(base); err != nil {
		return domain.PayTermComparison{}, err
	}

	options := make([]domain.PayTermOption, len(product.PayTerms))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, term := range product.PayTerms {
		eg.Go(func() error {
			r := req
			r.PayTerm = term
			result, err := s.illustrations.Illustrate(egCtx, r)
			switch {
			case err == nil:
				options[i] = optionFrom(result)
				return nil
			case errors.Is(err, ErrInsufficientBudget),
				errors.Is(err, ErrInvalidRequest),
				errors.Is(err, ErrInvalidPayTerm):
				options[i] = domain.PayTermOption{PayTerm: term, Skipped: true, SkipReason: err.Error()}
				return nil
			default:
				return fmt.Errorf("pay term %d: %w", term, err)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.PayTermComparison{}, err
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Skipped != options[j].Skipped {
			return !options[i].Skipped
		}
		if options[i].Skipped {
			return options[i].PayTerm < options[j].PayTerm
		}
		return options[i].IRR > options[j].IRR
	})

	if options[0].Skipped {
		return domain.PayTermComparison{}, fmt.Errorf("%w: no pay term of %s is affordable: %s",
			ErrInsufficientBudget, product.Name, options[0].SkipReason)
	}

	s.log.Debug("pay terms compared",
		zap.String("product", product.Name),
		zap.Int("best_pay_term", options[0].PayTerm),
		zap.Int("options", len(options)),
	)

	return domain.PayTermComparison{
		Product:     product.Name,
		Budget:      req.Budget,
		BestPayTerm: options[0].PayTerm,
		Options:     options,
	}, nil
}

func optionFrom(r domain.ProjectionResult) domain.PayTermOption {
	opt := domain.PayTermOption{
		PayTerm:      r.PayTerm,
		FaceAmount:   r.FaceAmount,
		IRR:          r.IRR,
		IRRConverged: r.IRRConverged,
	}
	if n := len(r.CashValues); n > 0 {
		opt.FinalCashValue = roundCurrency(r.CashValues[n-1])
		opt.FinalDeathBenefit = roundCurrency(r.DeathBenefits[n-1])
	}
	return opt
}
