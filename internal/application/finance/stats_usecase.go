package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	pnl "github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// StatsReportRenderer genera la representación en PDF del estado de resultados.
type StatsReportRenderer interface {
	RenderStats(ctx context.Context, stats *pnl.Stats) ([]byte, error)
}

// StatsUseCase calcula el estado de resultados de un rango de fechas.
//
// Fuente de datos: repositorios de pedidos, libro de caja y variantes (solo lectura).
type StatsUseCase struct {
	repos    ports.Repos
	settings ports.SettingsProvider
	renderer StatsReportRenderer
	log      *logger.Logger
}

// NewStatsUseCase construye el caso de uso. renderer puede ser nil si no se exponen reportes PDF.
func NewStatsUseCase(repos ports.Repos, settings ports.SettingsProvider, renderer StatsReportRenderer, log *logger.Logger) *StatsUseCase {
	return &StatsUseCase{repos: repos, settings: settings, renderer: renderer, log: log.Component("stats")}
}

// ComputeStats consulta en paralelo:
//  1. pedidos reconocidos del rango (con ítems)
//  2. otros ingresos, gastos operativos, ingresos y egresos brutos del rango
//  3. acumulados históricos para el saldo de caja
//  4. tasa de IVA vigente
func (uc *StatsUseCase) ComputeStats(ctx context.Context, from, to time.Time) (*pnl.Stats, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}

	in := pnl.Input{From: from, To: to}
	fin := uc.repos.Finance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Orders, err = uc.repos.Orders.ListByStatusInRange(gctx, entity.RecognizedStatuses, from, to)
		return wrap("pedidos del periodo", err)
	})
	g.Go(func() (err error) {
		in.OtherIncome, err = fin.SumAmount(gctx, entity.FinanceTypeIncome, pnl.OtherIncomeExcluded, &from, &to)
		return wrap("otros ingresos", err)
	})
	g.Go(func() (err error) {
		in.OperationalExpenses, err = fin.SumAmount(gctx, entity.FinanceTypeExpense, pnl.OperationalExcluded, &from, &to)
		return wrap("gastos operativos", err)
	})
	g.Go(func() (err error) {
		in.PeriodIncome, err = fin.SumAmount(gctx, entity.FinanceTypeIncome, nil, &from, &to)
		return wrap("ingresos del periodo", err)
	})
	g.Go(func() (err error) {
		in.PeriodExpense, err = fin.SumAmount(gctx, entity.FinanceTypeExpense, nil, &from, &to)
		return wrap("egresos del periodo", err)
	})
	g.Go(func() (err error) {
		in.AllTimeOrderRevenue, err = uc.repos.Orders.SumTotalByStatus(gctx, entity.RecognizedStatuses)
		return wrap("ventas históricas", err)
	})
	g.Go(func() (err error) {
		in.AllTimeIncome, err = fin.SumAmount(gctx, entity.FinanceTypeIncome, pnl.CashIncomeExcluded, nil, nil)
		return wrap("ingresos históricos", err)
	})
	g.Go(func() (err error) {
		in.AllTimeExpense, err = fin.SumAmount(gctx, entity.FinanceTypeExpense, nil, nil, nil)
		return wrap("egresos históricos", err)
	})
	g.Go(func() (err error) {
		in.VATRate, err = uc.settings.VATRate(gctx)
		return wrap("tasa de IVA", err)
	})
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).Time("from", from).Time("to", to).Msg("error calculando estadísticas")
		return nil, err
	}

	costs, err := uc.fallbackCosts(ctx, in.Orders)
	if err != nil {
		return nil, err
	}
	in.VariantCosts = costs

	stats := pnl.ComputeStats(in)
	return &stats, nil
}

// fallbackCosts trae el costo actual solo de las variantes cuyos ítems no tienen costo congelado.
func (uc *StatsUseCase) fallbackCosts(ctx context.Context, orders []*entity.Order) (map[string]decimal.Decimal, error) {
	seen := map[string]bool{}
	var ids []string
	for _, o := range orders {
		for _, it := range o.Items {
			if it.Snapshot.UnitCost.IsZero() && !seen[it.VariantID] {
				seen[it.VariantID] = true
				ids = append(ids, it.VariantID)
			}
		}
	}
	costs := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return costs, nil
	}
	variants, err := uc.repos.Variants.ListByIDs(ctx, ids)
	if err != nil {
		return nil, wrap("costos de variantes", err)
	}
	for id, v := range variants {
		costs[id] = v.UnitCost
	}
	return costs, nil
}

// RenderStatsPDF calcula las estadísticas y las devuelve como reporte PDF.
func (uc *StatsUseCase) RenderStatsPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("stats: generador de PDF no configurado")
	}
	stats, err := uc.ComputeStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderStats(ctx, stats)
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("stats: %s: %w", what, err)
}
