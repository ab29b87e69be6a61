// Where: internal/domain/category/category.go
// What: Name-based job classification and per-team discovery profiles.
// Why: Decide which discovered jobs are production (imported) vs development (API-managed).
package category

import (
	"regexp"
	"strings"
)

// Marketing job categories, in match priority order.
const (
	Attribution         = "attribution"
	Campaign            = "campaign"
	CustomerLTV         = "customer_ltv"
	Executive           = "executive"
	PlatformIntegration = "platform_integration"
	General             = "general"
)

type rule struct {
	category string
	pattern  *regexp.Regexp
}

var marketingRules = []rule{
	{category: Attribution, pattern: regexp.MustCompile(`attribution|touch|channel`)},
	{category: Campaign, pattern: regexp.MustCompile(`campaign|performance|ads?|adwords`)},
	{category: CustomerLTV, pattern: regexp.MustCompile(`ltv|lifetime|customer|segment`)},
	{category: Executive, pattern: regexp.MustCompile(`executive|dashboard|kpi|c.level`)},
	{category: PlatformIntegration, pattern: regexp.MustCompile(`facebook|google|linkedin|platform|sync`)},
}

// MarketingCategories lists every category including General.
func MarketingCategories() []string {
	return []string{Attribution, Campaign, CustomerLTV, Executive, PlatformIntegration, General}
}

// Categorize returns the marketing category for a job name.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, r := range marketingRules {
		if r.pattern.MatchString(lower) {
			return r.category
		}
	}
	return General
}

// MarketingPrefix returns the resource-name prefix used to group imported marketing jobs.
// It uses plain keyword checks, which are narrower than Categorize.
func MarketingPrefix(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "attribution"):
		return "attribution_"
	case strings.Contains(lower, "campaign"):
		return "campaign_"
	case containsAny(lower, "ltv", "customer"):
		return "customer_"
	case containsAny(lower, "executive", "dashboard"):
		return "executive_"
	case containsAny(lower, "platform", "ads"):
		return "platform_"
	}
	return ""
}

// Environments holds the optional production and staging environment ids.
type Environments struct {
	ProductionID int64
	StagingID    int64
}

// IsProduction reports whether a job runs in the production or staging environment,
// or carries a production-like keyword in its name.
func (e Environments) IsProduction(name string, environmentID int64) bool {
	if e.ProductionID != 0 && environmentID == e.ProductionID {
		return true
	}
	if e.StagingID != 0 && environmentID == e.StagingID {
		return true
	}
	return containsAny(strings.ToLower(name), "prod", "production", "staging")
}

// IsDevelopment reports whether a non-production job looks like a team branch job.
func IsDevelopment(name, team string) bool {
	if team != "" && strings.Contains(name, team+"-") {
		return true
	}
	return containsAny(strings.ToLower(name), "dev", "branch", "feature")
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
