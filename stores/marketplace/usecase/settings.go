package usecase

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
)

type settingsUsecaseImpl struct {
	repo marketplace.SettingsRepo
}

func NewSettingsUsecase(repo marketplace.SettingsRepo) marketplace.SettingsUsecase {
	return &settingsUsecaseImpl{repo}
}

// Get returns the stored settings, or the zero-fee unpaused defaults when
// nothing has been stored yet.
func (im *settingsUsecaseImpl) Get(c ctx.Ctx) (*marketplace.Settings, error) {
	res, err := im.repo.Get(c)
	if err == domain.ErrNotFound {
		return &marketplace.Settings{
			PlatformFeeRecipient: domain.EmptyAddress,
			PlatformFeeBps:       0,
			Paused:               false,
		}, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to repo.Get")
		return nil, err
	}
	return res, nil
}

func (im *settingsUsecaseImpl) Update(c ctx.Ctx, updater *marketplace.SettingsUpdater) (*marketplace.Settings, error) {
	if updater.PlatformFeeBps != nil && (*updater.PlatformFeeBps < 0 || *updater.PlatformFeeBps > marketplace.MaxBps) {
		return nil, domain.ErrBadParamInput
	}

	settings, err := im.Get(c)
	if err != nil {
		return nil, err
	}

	if updater.PlatformFeeRecipient != nil {
		settings.PlatformFeeRecipient = updater.PlatformFeeRecipient.ToLower()
	}
	if updater.PlatformFeeBps != nil {
		settings.PlatformFeeBps = *updater.PlatformFeeBps
	}
	if updater.Paused != nil {
		settings.Paused = *updater.Paused
	}
	settings.UpdatedAt = time.Now()

	if err := im.repo.Upsert(c, settings); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"settings": *settings,
		}).Error("failed to repo.Upsert")
		return nil, err
	}

	return settings, nil
}

func (im *settingsUsecaseImpl) SetPaused(c ctx.Ctx, paused bool) (*marketplace.Settings, error) {
	return im.Update(c, &marketplace.SettingsUpdater{Paused: &paused})
}
