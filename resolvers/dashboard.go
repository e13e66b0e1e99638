// path: resolvers/dashboard.go
package resolvers

import (
	"context"
	"sort"
	"strconv"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"golang.org/x/sync/errgroup"
)

// DashboardStats recomputes every figure from the collections. The
// sub-queries run concurrently and any failure fails the whole call; they
// do not share a snapshot.
func (r *Resolver) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	since := r.clock().AddDate(0, -12, 0)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, n func(context.Context) (int64, error)) {
		g.Go(func() error {
			v, err := n(gctx)
			*dst = int(v)
			return err
		})
	}
	count(&stats.TotalSpecies, func(ctx context.Context) (int64, error) { return r.repo.Species().Count(ctx, nil) })
	count(&stats.TotalMethods, func(ctx context.Context) (int64, error) { return r.repo.Methods().Count(ctx, nil) })
	count(&stats.TotalLocations, func(ctx context.Context) (int64, error) { return r.repo.Locations().Count(ctx, nil) })
	count(&stats.TotalMonitoringData, func(ctx context.Context) (int64, error) { return r.repo.Observations().Count(ctx, nil) })

	g.Go(func() error {
		docs, err := r.repo.Observations().Find(gctx, store.Query{Sort: byDateDesc, Limit: recentDataLimit})
		if err != nil {
			return err
		}
		stats.RecentData, err = r.observeAll(gctx, docs, preset{})
		return err
	})
	g.Go(func() error {
		groups, err := r.repo.Species().GroupCount(gctx, "conservationStatus")
		stats.SpeciesByStatus = statusCounts(groups)
		return err
	})
	g.Go(func() error {
		groups, err := r.repo.Methods().GroupCount(gctx, "type")
		stats.MethodsByType = methodTypeCounts(groups)
		return err
	})
	g.Go(func() error {
		months, err := r.repo.Observations().MonthlyCount(gctx, "date", since)
		stats.DataByMonth = monthlyCounts(months, r.monthOrder)
		return err
	})

	if err := g.Wait(); err != nil {
		if models.IsValidation(err) {
			return nil, err
		}
		return nil, r.storeErr("dashboard", err)
	}
	return stats, nil
}

// statusCounts folds stored values onto canonical tokens, so documents
// written with a legacy label ("Vulnerable") count with "VULNERABLE".
// Values that match no token are dropped.
func statusCounts(groups []store.GroupCount) []models.StatusCount {
	tally := map[models.ConservationStatus]int{}
	for _, g := range groups {
		if s, ok := models.ParseConservationStatus(g.Key); ok {
			tally[s] += int(g.Count)
		}
	}
	out := []models.StatusCount{}
	for _, s := range models.ConservationStatuses() {
		if n := tally[s]; n > 0 {
			out = append(out, models.StatusCount{Status: s, Count: n})
		}
	}
	return out
}

func methodTypeCounts(groups []store.GroupCount) []models.MethodTypeCount {
	tally := map[models.MethodType]int{}
	for _, g := range groups {
		if t, ok := models.ParseMethodType(g.Key); ok {
			tally[t] += int(g.Count)
		}
	}
	out := []models.MethodTypeCount{}
	for _, t := range models.MethodTypes() {
		if n := tally[t]; n > 0 {
			out = append(out, models.MethodTypeCount{Type: t, Count: n})
		}
	}
	return out
}

// monthlyCounts keys each bucket "<year>-<month>" with an unpadded month.
// Lexical order sorts by that string, so "2024-10" precedes "2024-9".
func monthlyCounts(months []store.MonthCount, order string) []models.MonthlyCount {
	sorted := append([]store.MonthCount(nil), months...)
	if order == MonthOrderChronological {
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Year != sorted[j].Year {
				return sorted[i].Year < sorted[j].Year
			}
			return sorted[i].Month < sorted[j].Month
		})
	}
	out := make([]models.MonthlyCount, 0, len(sorted))
	for _, m := range sorted {
		if m.Count == 0 {
			continue
		}
		out = append(out, models.MonthlyCount{
			Month: strconv.Itoa(m.Year) + "-" + strconv.Itoa(m.Month),
			Count: int(m.Count),
		})
	}
	if order != MonthOrderChronological {
		sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	}
	return out
}
