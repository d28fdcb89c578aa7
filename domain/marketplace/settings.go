package marketplace

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

const MaxBps = int64(10000)

// Settings is the single global platform configuration document.
type Settings struct {
	PlatformFeeRecipient domain.Address `json:"platformFeeRecipient" bson:"platformFeeRecipient"`
	PlatformFeeBps       int64          `json:"platformFeeBps" bson:"platformFeeBps"`
	Paused               bool           `json:"paused" bson:"paused"`
	UpdatedAt            time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type SettingsUpdater struct {
	PlatformFeeRecipient *domain.Address `json:"platformFeeRecipient" bson:"platformFeeRecipient,omitempty"`
	PlatformFeeBps       *int64          `json:"platformFeeBps" bson:"platformFeeBps,omitempty"`
	Paused               *bool           `json:"paused" bson:"paused,omitempty"`
}

type SettingsRepo interface {
	Get(c ctx.Ctx) (*Settings, error)
	Upsert(c ctx.Ctx, settings *Settings) error
}

type SettingsUsecase interface {
	Get(c ctx.Ctx) (*Settings, error)
	Update(c ctx.Ctx, updater *SettingsUpdater) (*Settings, error)
	SetPaused(c ctx.Ctx, paused bool) (*Settings, error)
}
