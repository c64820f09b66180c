package pricing

import (
	"context"
	"time"

	"deskhive/pkg/cache"
	"deskhive/pkg/logger"
)

const feeSettingsCacheKey = "deskhive:fee-settings"

// FeeSettingsSource interface for the remote booking store (to avoid circular dependency)
type FeeSettingsSource interface {
	PaymentFeeSettings(ctx context.Context) (FeeSettings, error)
}

// FeeSettingsProvider serves the current fee schedule with a short cache.
// It never fails: when both cache and store are unavailable the built-in
// defaults apply, with a warning logged.
type FeeSettingsProvider struct {
	source FeeSettingsSource
	cache  cache.Service
	ttl    time.Duration
	logger *logger.Logger
}

// NewFeeSettingsProvider creates a provider with the given cache TTL
func NewFeeSettingsProvider(source FeeSettingsSource, cacheService cache.Service, ttl time.Duration, log *logger.Logger) *FeeSettingsProvider {
	return &FeeSettingsProvider{
		source: source,
		cache:  cacheService,
		ttl:    ttl,
		logger: log,
	}
}

// Current returns the fee schedule to use for an invoice right now
func (p *FeeSettingsProvider) Current(ctx context.Context) FeeSettings {
	var settings FeeSettings

	if p.cache != nil {
		err := p.cache.GetOrSet(ctx, feeSettingsCacheKey, p.ttl, func() (interface{}, error) {
			fetched, err := p.source.PaymentFeeSettings(ctx)
			if err != nil {
				return nil, err
			}
			return fetched, nil
		}, &settings)
		if err == nil {
			return settings
		}
		p.logger.LogFeeSettingsFallback(ctx, err)
		return DefaultFeeSettings()
	}

	settings, err := p.source.PaymentFeeSettings(ctx)
	if err != nil {
		p.logger.LogFeeSettingsFallback(ctx, err)
		return DefaultFeeSettings()
	}
	return settings
}
