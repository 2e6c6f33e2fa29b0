package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

const cacheTTL = 5 * time.Minute

// ClinicSettings é o que o core consome da clínica: a janela de entrada
// (usada na aritmética do join) e o formato de hora (só para exibição).
type ClinicSettings struct {
	JoinWindowMinutes int    `json:"join_window_minutes"`
	TimeFormat        string `json:"time_format"`
	Timezone          string `json:"timezone"`
}

type Provider struct {
	db            *gorm.DB
	cache         *redis.Client
	defaultWindow int
}

func NewProvider(db *gorm.DB, cache *redis.Client, defaultWindow int) *Provider {
	return &Provider{
		db:            db,
		cache:         cache,
		defaultWindow: defaultWindow,
	}
}

func cacheKey(clinicID uint) string {
	return fmt.Sprintf("clinic_settings:%d", clinicID)
}

func (p *Provider) Get(ctx context.Context, clinicID uint) (ClinicSettings, error) {

	if p.cache != nil {
		if raw, err := p.cache.Get(ctx, cacheKey(clinicID)).Result(); err == nil {
			var s ClinicSettings
			if json.Unmarshal([]byte(raw), &s) == nil {
				return s, nil
			}
		}
	}

	var clinic models.Clinic
	if err := p.db.WithContext(ctx).First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ClinicSettings{}, httperr.ErrBusiness("clinic_not_found")
		}
		return ClinicSettings{}, err
	}

	s := ClinicSettings{
		JoinWindowMinutes: Clamp(clinic.JoinWindowMinutes),
		TimeFormat:        clinic.TimeFormat,
		Timezone:          clinic.Timezone,
	}

	if p.cache != nil {
		if b, err := json.Marshal(s); err == nil {
			p.cache.Set(ctx, cacheKey(clinicID), b, cacheTTL)
		}
	}

	return s, nil
}

// JoinWindowMinutes nunca falha: sem clínica ou sem redis, vale o
// default do servidor. Configuração não pode derrubar o join.
func (p *Provider) JoinWindowMinutes(ctx context.Context, clinicID uint) int {
	s, err := p.Get(ctx, clinicID)
	if err != nil {
		return Clamp(p.defaultWindow)
	}
	return s.JoinWindowMinutes
}

func (p *Provider) Update(
	ctx context.Context,
	clinicID uint,
	joinWindowMinutes *int,
	timeFormat *string,
) (ClinicSettings, error) {

	var clinic models.Clinic
	if err := p.db.WithContext(ctx).First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ClinicSettings{}, httperr.ErrBusiness("clinic_not_found")
		}
		return ClinicSettings{}, err
	}

	if joinWindowMinutes != nil {
		if *joinWindowMinutes < 0 || *joinWindowMinutes > 120 {
			return ClinicSettings{}, httperr.ErrBusiness("join_window_out_of_range")
		}
		clinic.JoinWindowMinutes = *joinWindowMinutes
	}

	if timeFormat != nil {
		clinic.TimeFormat = *timeFormat
	}

	if err := p.db.WithContext(ctx).Save(&clinic).Error; err != nil {
		return ClinicSettings{}, err
	}

	if p.cache != nil {
		p.cache.Del(ctx, cacheKey(clinicID))
	}

	return ClinicSettings{
		JoinWindowMinutes: Clamp(clinic.JoinWindowMinutes),
		TimeFormat:        clinic.TimeFormat,
		Timezone:          clinic.Timezone,
	}, nil
}

// Clamp prende a janela na faixa administrável (0–120 minutos).
func Clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 120 {
		return 120
	}
	return n
}
