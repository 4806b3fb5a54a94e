package service

import (
	"context"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type pricingService struct {
	configRepo repository.PricingConfigRepository
}

func NewPricingService(configRepo repository.PricingConfigRepository) PricingService {
	return &pricingService{configRepo: configRepo}
}

func (s *pricingService) GetConfig(ctx context.Context) (*domain.PricingConfig, error) {
	return s.configRepo.Get(ctx)
}

func (s *pricingService) UpdateRentalFeeDaily(ctx context.Context, newValueCents int64) (*domain.PricingConfig, error) {
	if newValueCents < 0 {
		return nil, domain.Validationf("daily rental fee must not be negative")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.RentalFeeDailyCents = newValueCents
	if err := s.configRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *pricingService) UpdateLateFeeDaily(ctx context.Context, newValueCents int64) (*domain.PricingConfig, error) {
	if newValueCents < 0 {
		return nil, domain.Validationf("daily late fee must not be negative")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.LateFeeDailyCents = newValueCents
	if err := s.configRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *pricingService) CalculateLoanFee(ctx context.Context, days int32) (*domain.FeeQuote, error) {
	if days <= 0 {
		return nil, domain.Validationf("days must be greater than 0")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.FeeQuote{
		Days:           days,
		DailyRateCents: cfg.RentalFeeDailyCents,
		TotalCents:     cfg.RentalFeeDailyCents * int64(days),
	}, nil
}

func (s *pricingService) CalculateLateFee(ctx context.Context, lateDays int32) (*domain.FeeQuote, error) {
	if lateDays <= 0 {
		return nil, domain.Validationf("late days must be greater than 0")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.FeeQuote{
		Days:           lateDays,
		DailyRateCents: cfg.LateFeeDailyCents,
		TotalCents:     cfg.LateFeeDailyCents * int64(lateDays),
	}, nil
}
