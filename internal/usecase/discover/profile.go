// Where: internal/usecase/discover/profile.go
// What: Detect which discovery profile has cached jobs.
// Why: Import and convert follow the last job discovery.
package discover

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
)

// ErrNoJobDiscovery reports that neither profile has a discovery cache yet.
var ErrNoJobDiscovery = errors.New("no job discovery cache found")

// DetectProfile returns the first profile whose discovery cache exists, marketing first.
func DetectProfile(ctx context.Context, store cache.Store) (category.Profile, error) {
	for _, p := range category.Profiles() {
		ok, err := store.Sub(p.DiscoveryDir).Exists(ctx)
		if err != nil {
			return category.Profile{}, err
		}
		if ok {
			return p, nil
		}
	}
	return category.Profile{}, fmt.Errorf("%w: run `discover jobs` first", ErrNoJobDiscovery)
}
