package services

import (
	"fmt"
	"slices"
	"strings"

	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/model/ranking"
	"orderstats/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the input size from which a ranker configured with
// more than one worker splits the accumulation.
const DefaultParallelThreshold = 50_000

// RegionAverageRanker computes the average order value per region and ranks the
// regions from the highest average to the lowest.
//
// Business rules:
//   - Records are grouped by exact region equality; records without a region are skipped
//   - Null order values are left out of both the sum and the count of their region
//   - A region whose values are all null is kept with a null average
//   - Regions are ordered by average descending, null averages last,
//     ties broken by region ascending
//
// Example usage:
//
//	ranker := NewRegionAverageRanker()
//	result, err := ranker.Rank([]order.Record{
//	    order.NewValuedRecord("West", decimal.NewFromInt(100)),
//	    order.NewValuedRecord("West", decimal.NewFromInt(300)),
//	    order.NewValuedRecord("East", decimal.NewFromInt(50)),
//	})
//	// result: West 200, East 50
type RegionAverageRanker struct {
	workers           int
	parallelThreshold int
}

// RankerOption configures a RegionAverageRanker.
type RankerOption func(*RegionAverageRanker)

// WithWorkers sets how many goroutines accumulate large inputs. Values below 2
// keep the ranking sequential.
func WithWorkers(n int) RankerOption {
	return func(r *RegionAverageRanker) {
		r.workers = n
	}
}

// WithParallelThreshold sets the minimum input size for parallel accumulation.
func WithParallelThreshold(n int) RankerOption {
	return func(r *RegionAverageRanker) {
		r.parallelThreshold = n
	}
}

// NewRegionAverageRanker creates a sequential ranker unless options say otherwise.
func NewRegionAverageRanker(opts ...RankerOption) *RegionAverageRanker {
	r := &RegionAverageRanker{
		workers:           1,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RankByAverageSpending ranks records with a sequential ranker.
func RankByAverageSpending(records []order.Record) ([]ranking.RegionAverage, error) {
	return NewRegionAverageRanker().Rank(records)
}

// Rank groups records by region and returns one RegionAverage per distinct region,
// sorted by average spending descending. An empty input yields an empty result.
//
// Returns an InvalidInputError when any record was not built through order.NewRecord;
// the error names the first such record.
func (r *RegionAverageRanker) Rank(records []order.Record) ([]ranking.RegionAverage, error) {
	var (
		totals map[string]*regionTotals
		err    error
	)

	if r.workers > 1 && len(records) >= r.parallelThreshold {
		totals, err = r.accumulateParallel(records)
	} else {
		totals, err = accumulate(records, 0)
	}
	if err != nil {
		return nil, err
	}

	result := make([]ranking.RegionAverage, 0, len(totals))
	for region, t := range totals {
		result = append(result, t.average(region))
	}

	slices.SortFunc(result, compareRegionAverages)
	return result, nil
}

// regionTotals is the running sum and count of non-null values of one region.
type regionTotals struct {
	sum   decimal.Decimal
	count int
}

func (t *regionTotals) add(other *regionTotals) {
	t.sum = t.sum.Add(other.sum)
	t.count += other.count
}

func (t *regionTotals) average(region string) ranking.RegionAverage {
	avg := ranking.RegionAverage{Region: region, OrderCount: t.count}
	if t.count > 0 {
		avg.AverageSpending = decimal.NewNullDecimal(t.sum.Div(decimal.NewFromInt(int64(t.count))))
	}
	return avg
}

// accumulate folds records into per-region totals. offset is the index of
// records[0] in the caller's slice and only shapes error messages.
func accumulate(records []order.Record, offset int) (map[string]*regionTotals, error) {
	totals := make(map[string]*regionTotals)

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, errs.NewInvalidInputErrorWithCause(fmt.Sprintf("orders[%d]", offset+i), nil, err)
		}
		if !rec.HasRegion() {
			continue
		}

		t, ok := totals[rec.Region()]
		if !ok {
			t = &regionTotals{}
			totals[rec.Region()] = t
		}

		if v := rec.Value(); v.Valid {
			t.sum = t.sum.Add(v.Decimal)
			t.count++
		}
	}

	return totals, nil
}

// accumulateParallel splits records into contiguous chunks, accumulates each in
// its own goroutine and merges the partial totals. Decimal addition is exact, so
// the merged totals equal the sequential ones.
func (r *RegionAverageRanker) accumulateParallel(records []order.Record) (map[string]*regionTotals, error) {
	chunkSize := (len(records) + r.workers - 1) / r.workers
	chunks := (len(records) + chunkSize - 1) / chunkSize

	partials := make([]map[string]*regionTotals, chunks)
	failures := make([]error, chunks)

	var g errgroup.Group
	for c := range chunks {
		start := c * chunkSize
		end := min(start+chunkSize, len(records))

		g.Go(func() error {
			partials[c], failures[c] = accumulate(records[start:end], start)
			return failures[c]
		})
	}

	if err := g.Wait(); err != nil {
		// report the lowest offending index, as the sequential path would
		for _, failure := range failures {
			if failure != nil {
				return nil, failure
			}
		}
	}

	merged := make(map[string]*regionTotals)
	for _, partial := range partials {
		for region, t := range partial {
			if m, ok := merged[region]; ok {
				m.add(t)
				continue
			}
			merged[region] = t
		}
	}
	return merged, nil
}

func compareRegionAverages(a, b ranking.RegionAverage) int {
	switch {
	case a.AverageSpending.Valid && !b.AverageSpending.Valid:
		return -1
	case !a.AverageSpending.Valid && b.AverageSpending.Valid:
		return 1
	case a.AverageSpending.Valid && b.AverageSpending.Valid:
		if c := b.AverageSpending.Decimal.Cmp(a.AverageSpending.Decimal); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Region, b.Region)
}
