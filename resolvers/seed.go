// path: resolvers/seed.go
package resolvers

import (
	"context"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/seed"
)

// SeedData replaces the catalogue and observations with the sample set.
func (r *Resolver) SeedData(ctx context.Context, rc auth.RequestContext) (seed.Summary, error) {
	caller, err := auth.RequireAdmin(rc)
	if err != nil {
		return seed.Summary{}, err
	}
	sum, err := seed.Load(ctx, r.repo, caller.Subject, r.clock())
	if err != nil {
		return seed.Summary{}, r.storeErr("seed", err)
	}
	r.log.Info().Str("by", caller.Subject).Interface("summary", sum).Msg("sample data loaded")
	return sum, nil
}
