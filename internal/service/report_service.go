package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"finbook/internal/cache"
	dom "finbook/internal/domain"
	"finbook/internal/repo"

	"golang.org/x/sync/singleflight"
)

// UncategorizedLabel stands in for transactions whose category row is gone.
const UncategorizedLabel = "Uncategorized"

// ReportService derives summaries and breakdowns from the ledger. It holds no
// state of its own beyond the cache; every call recomputes from the store on
// a cache miss. If c is nil, caching is disabled.
type ReportService struct {
	transactions repo.TransactionRepo
	cache        *cache.ReportCache
	sf           singleflight.Group
}

// NewReportService returns a new ReportService.
func NewReportService(transactions repo.TransactionRepo, c *cache.ReportCache) *ReportService {
	return &ReportService{transactions: transactions, cache: c}
}

// Summary returns income/expense totals and balance over the inclusive date
// range. Nil bounds leave that side open. An empty range yields zero totals.
func (s *ReportService) Summary(ctx context.Context, userID int64, from, to *time.Time) (dom.Summary, error) {
	if s.cache == nil {
		return s.transactions.Summary(ctx, userID, dom.TransactionFilter{From: from, To: to})
	}
	key := sfKey("summary", userID, from, to)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, err := s.cache.GetSummary(ctx, userID, from, to); err == nil && cached != nil {
			return *cached, nil
		}
		sum, err := s.transactions.Summary(ctx, userID, dom.TransactionFilter{From: from, To: to})
		if err != nil {
			return dom.Summary{}, err
		}
		_ = s.cache.SetSummary(ctx, userID, from, to, sum)
		return sum, nil
	})
	if err != nil {
		return dom.Summary{}, err
	}
	return v.(dom.Summary), nil
}

// Breakdown groups the user's expenses in the range by category and annotates
// each group with its share of the expense total, largest group first.
func (s *ReportService) Breakdown(ctx context.Context, userID int64, from, to *time.Time) ([]dom.BreakdownEntry, error) {
	compute := func() ([]dom.BreakdownEntry, error) {
		list, err := s.transactions.List(ctx, userID, dom.TransactionFilter{
			Type: dom.TxExpense,
			From: from,
			To:   to,
		})
		if err != nil {
			return nil, err
		}
		return ComputeBreakdown(list), nil
	}

	if s.cache == nil {
		return compute()
	}
	key := sfKey("breakdown", userID, from, to)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, err := s.cache.GetBreakdown(ctx, userID, from, to); err == nil && cached != nil {
			return *cached, nil
		}
		entries, err := compute()
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetBreakdown(ctx, userID, from, to, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.BreakdownEntry), nil
}

// ComputeBreakdown groups an already-filtered transaction list by category
// name, sums amounts per group and computes each group's percentage of the
// grand total, rounded to one decimal. Groups are ordered by sum descending,
// name ascending on ties. Empty input yields an empty slice.
func ComputeBreakdown(list []dom.Transaction) []dom.BreakdownEntry {
	totals := make(map[string]float64)
	var grand float64
	for _, t := range list {
		name := t.CategoryName
		if name == "" {
			name = UncategorizedLabel
		}
		totals[name] += t.Amount
		grand += t.Amount
	}

	entries := make([]dom.BreakdownEntry, 0, len(totals))
	for name, total := range totals {
		pct := 0.0
		if grand > 0 {
			pct = math.Round(total/grand*1000) / 10
		}
		entries = append(entries, dom.BreakdownEntry{
			Category:   name,
			Total:      total,
			Percentage: pct,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Category < entries[j].Category
	})
	return entries
}

func sfKey(kind string, userID int64, from, to *time.Time) string {
	key := kind + ":" + strconv.FormatInt(userID, 10) + ":"
	if from != nil {
		key += from.Format("2006-01-02")
	}
	key += ":"
	if to != nil {
		key += to.Format("2006-01-02")
	}
	return key
}
