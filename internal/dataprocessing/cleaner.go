package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// methodVariants maps every raw sales_method spelling observed in the source
// data (case-folded, whitespace-collapsed) to its canonical value. Anything
// outside this lookup fails the run rather than being coerced.
var methodVariants = map[string]domain.SalesMethod{
	"email":          domain.MethodEmail,
	"call":           domain.MethodCall,
	"email + call":   domain.MethodEmailAndCall,
	"email+call":     domain.MethodEmailAndCall,
	"em + call":      domain.MethodEmailAndCall,
	"email and call": domain.MethodEmailAndCall,
	"email_and_call": domain.MethodEmailAndCall,
}

// CleanerConfig holds the business-rule parameters for the cleaning stage
type CleanerConfig struct {
	TenurePolicy       string // clip, drop, or flag
	MaxYearsAsCustomer int
	MaxWeek            int
}

// DefaultCleanerConfig returns the standard cleaning configuration
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		TenurePolicy:       config.TenurePolicyClip,
		MaxYearsAsCustomer: 39,
		MaxWeek:            6,
	}
}

// CleanStats summarizes what the cleaning stage changed
type CleanStats struct {
	InputRows         int `json:"input_rows"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	TenureViolations  int `json:"tenure_violations"`
	RowsDropped       int `json:"rows_dropped"`
	RevenueImputed    int `json:"revenue_imputed"`
}

// CleanResult is the output of the cleaning stage: the invariant-satisfying
// table plus an audit trail of every automatic correction.
type CleanResult struct {
	Rows   []domain.Interaction
	Issues []errors.Issue
	Stats  CleanStats
}

// Cleaner brings a raw interaction table into the invariant-satisfying state:
// canonical methods, no exact duplicates, bounded tenure, no missing revenue.
type Cleaner struct {
	logger *slog.Logger
	config CleanerConfig
}

// NewCleaner creates a new cleaner with the given configuration
func NewCleaner(logger *slog.Logger, cfg CleanerConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TenurePolicy == "" {
		cfg.TenurePolicy = config.TenurePolicyClip
	}
	if cfg.MaxYearsAsCustomer <= 0 {
		cfg.MaxYearsAsCustomer = 39
	}
	if cfg.MaxWeek <= 0 {
		cfg.MaxWeek = 6
	}
	return &Cleaner{logger: logger, config: cfg}
}

// Clean runs the four cleaning steps in their required order: method
// normalization, duplicate removal, tenure validation, revenue imputation.
// The input slice is never mutated; cleaning its own output is a no-op.
func (c *Cleaner) Clean(ctx context.Context, rows []domain.Interaction) (*CleanResult, error) {
	result := &CleanResult{
		Stats: CleanStats{InputRows: len(rows)},
	}

	c.logger.InfoContext(ctx, "cleaning interaction table",
		slog.Int("input_rows", len(rows)),
		slog.String("tenure_policy", c.config.TenurePolicy))

	normalized, err := c.normalizeMethods(rows)
	if err != nil {
		return nil, err
	}

	deduped := c.removeDuplicates(normalized, &result.Stats)

	validated := c.applyBusinessRules(ctx, deduped, result)

	imputed, err := c.imputeRevenue(ctx, validated, result)
	if err != nil {
		return nil, err
	}

	result.Rows = imputed

	c.logger.InfoContext(ctx, "cleaned interaction table",
		slog.Int("output_rows", len(result.Rows)),
		slog.Int("duplicates_removed", result.Stats.DuplicatesRemoved),
		slog.Int("tenure_violations", result.Stats.TenureViolations),
		slog.Int("revenue_imputed", result.Stats.RevenueImputed))

	return result, nil
}

// normalizeMethods maps raw sales_method spellings onto the canonical values.
// Unrecognized values are fatal: dropping them silently would skew every
// downstream aggregate.
func (c *Cleaner) normalizeMethods(rows []domain.Interaction) ([]domain.Interaction, error) {
	normalized := make([]domain.Interaction, len(rows))
	for i, row := range rows {
		raw := string(row.SalesMethod)
		key := strings.ToLower(strings.Join(strings.Fields(raw), " "))

		canonical, ok := methodVariants[key]
		if !ok {
			return nil, errors.NewSchemaViolationError("sales_method", raw, i+1)
		}

		row.SalesMethod = canonical
		normalized[i] = row
	}
	return normalized, nil
}

// removeDuplicates collapses rows identical across every column, keeping the
// first occurrence so repeated runs are deterministic.
func (c *Cleaner) removeDuplicates(rows []domain.Interaction, stats *CleanStats) []domain.Interaction {
	seen := make(map[domain.InteractionKey]bool, len(rows))
	deduped := make([]domain.Interaction, 0, len(rows))

	for _, row := range rows {
		key := row.Key()
		if seen[key] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = true
		deduped = append(deduped, row)
	}

	return deduped
}

// applyBusinessRules enforces the tenure cap per the configured policy and
// flags out-of-range weeks. Violations are corrected (or dropped or just
// flagged), recorded as audit issues, and never abort the run.
func (c *Cleaner) applyBusinessRules(ctx context.Context, rows []domain.Interaction, result *CleanResult) []domain.Interaction {
	kept := make([]domain.Interaction, 0, len(rows))

	for i, row := range rows {
		if row.YearsAsCustomer > c.config.MaxYearsAsCustomer {
			result.Stats.TenureViolations++
			issue := errors.Issue{
				Row:      i + 1,
				Field:    "years_as_customer",
				Rule:     fmt.Sprintf("max %d", c.config.MaxYearsAsCustomer),
				Original: strconv.Itoa(row.YearsAsCustomer),
			}

			switch c.config.TenurePolicy {
			case config.TenurePolicyDrop:
				issue.Corrected = "row dropped"
				result.Stats.RowsDropped++
				result.Issues = append(result.Issues, issue)
				c.logger.WarnContext(ctx, "dropped row with out-of-range tenure",
					slog.Int("row", i+1),
					slog.Int("years_as_customer", row.YearsAsCustomer))
				continue
			case config.TenurePolicyFlag:
				result.Issues = append(result.Issues, issue)
			default: // clip
				issue.Corrected = strconv.Itoa(c.config.MaxYearsAsCustomer)
				result.Issues = append(result.Issues, issue)
				c.logger.WarnContext(ctx, "clipped out-of-range tenure",
					slog.Int("row", i+1),
					slog.Int("original", row.YearsAsCustomer),
					slog.Int("corrected", c.config.MaxYearsAsCustomer))
				row.YearsAsCustomer = c.config.MaxYearsAsCustomer
			}
		}

		if row.Week < 1 || row.Week > c.config.MaxWeek {
			result.Issues = append(result.Issues, errors.Issue{
				Row:      i + 1,
				Field:    "week",
				Rule:     fmt.Sprintf("range 1-%d", c.config.MaxWeek),
				Original: strconv.Itoa(row.Week),
			})
		}

		kept = append(kept, row)
	}

	return kept
}

// imputeRevenue fills each missing revenue with the arithmetic mean of the
// non-missing revenues sharing the row's sales method. The means are computed
// once, over the already deduplicated and normalized table, so imputed values
// never feed back into them.
func (c *Cleaner) imputeRevenue(ctx context.Context, rows []domain.Interaction, result *CleanResult) ([]domain.Interaction, error) {
	sums := make(map[domain.SalesMethod]float64)
	counts := make(map[domain.SalesMethod]int)
	for _, row := range rows {
		if !row.RevenueMissing {
			sums[row.SalesMethod] += row.Revenue
			counts[row.SalesMethod]++
		}
	}

	imputed := make([]domain.Interaction, len(rows))
	for i, row := range rows {
		if row.RevenueMissing {
			n := counts[row.SalesMethod]
			if n == 0 {
				return nil, errors.NewAppError(errors.ErrTypeSchema,
					fmt.Sprintf("cannot impute revenue for method %q: no rows with recorded revenue", row.SalesMethod), nil).
					WithContext("row", i+1)
			}
			row.Revenue = sums[row.SalesMethod] / float64(n)
			row.RevenueMissing = false
			row.RevenueImputed = true
			result.Stats.RevenueImputed++

			c.logger.DebugContext(ctx, "imputed missing revenue",
				slog.Int("row", i+1),
				slog.String("sales_method", row.SalesMethod.String()),
				slog.Float64("imputed_value", row.Revenue))
		}
		imputed[i] = row
	}

	return imputed, nil
}
