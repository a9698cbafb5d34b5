package store

import (
	"context"
	"database/sql"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OperationSummary aggregates the stored invocations of one operation.
// Timings cover only invocations logged with an elapsed time.
type OperationSummary struct {
	Owner  string  `json:"owner"`
	Method string  `json:"method"`
	Calls  int     `json:"calls"`
	Timed  int     `json:"timed"`
	MeanMs float64 `json:"mean_ms"`
	P95Ms  float64 `json:"p95_ms"`
	MaxMs  float64 `json:"max_ms"`
}

type timingRow struct {
	Owner     string          `db:"owner"`
	Method    string          `db:"method"`
	ElapsedMs sql.NullFloat64 `db:"elapsed_ms"`
}

// Summarize returns one summary per stored operation, ordered by owner
// then method.
func (s *InvocationStore) Summarize(ctx context.Context) ([]OperationSummary, error) {
	var rows []timingRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT owner, method, elapsed_ms FROM invocation_log`); err != nil {
		return nil, errors.Wrap(err, "select timings")
	}
	if len(rows) == 0 {
		return []OperationSummary{}, nil
	}

	type opID struct{ owner, method string }
	ops := make(map[string]opID)
	names := make([]string, len(rows))
	elapsed := make([]float64, len(rows))
	for i, row := range rows {
		names[i] = row.Owner + "." + row.Method
		ops[names[i]] = opID{row.Owner, row.Method}
		elapsed[i] = math.NaN()
		if row.ElapsedMs.Valid {
			elapsed[i] = row.ElapsedMs.Float64
		}
	}

	df := dataframe.New(
		series.New(names, series.String, "operation"),
		series.New(elapsed, series.Float, "elapsed_ms"),
	)
	if err := df.Error(); err != nil {
		return nil, errors.Wrap(err, "build timings dataframe")
	}

	summaries := make([]OperationSummary, 0, len(ops))
	for name, id := range ops {
		sub := df.Filter(dataframe.F{
			Colname:    "operation",
			Comparator: series.Eq,
			Comparando: name,
		})
		if err := sub.Error(); err != nil {
			return nil, errors.Wrapf(err, "filter %s", name)
		}

		summary := OperationSummary{Owner: id.owner, Method: id.method, Calls: sub.Nrow()}
		timed := timedValues(sub.Col("elapsed_ms").Float())
		if len(timed) > 0 {
			summary.Timed = len(timed)
			summary.MeanMs = round2(stat.Mean(timed, nil))
			summary.P95Ms = round2(stat.Quantile(0.95, stat.Empirical, timed, nil))
			summary.MaxMs = round2(floats.Max(timed))
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Owner != summaries[j].Owner {
			return summaries[i].Owner < summaries[j].Owner
		}
		return summaries[i].Method < summaries[j].Method
	})
	return summaries, nil
}

// timedValues drops missing timings and sorts the rest, as stat.Quantile requires.
func timedValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
