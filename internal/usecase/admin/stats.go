// Package admin serves the back-office dashboard.
package admin

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/dto"
)

type StatsReader interface {
	AdminStats(ctx context.Context) (*dto.AdminStatsDTO, error)
}

type Stats struct {
	reader StatsReader
}

func NewStats(reader StatsReader) *Stats {
	return &Stats{reader: reader}
}

func (uc *Stats) Execute(ctx context.Context) (*dto.AdminStatsDTO, error) {
	return uc.reader.AdminStats(ctx)
}
