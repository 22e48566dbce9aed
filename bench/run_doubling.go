package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/bench/gen"
	"github.com/ic-timon/algs4/bench/metrics"
	"github.com/ic-timon/algs4/logutil"
)

// runDoubling 规模从 Start 起每轮翻倍直到 Max，记录每轮耗时；ratio 模式额外输出相邻两轮耗时之比。
func runDoubling(cfg *benchConfig) error {
	reg := prometheus.NewRegistry()
	a, tr, am, err := benchAllocator(cfg.Allocator, reg)
	if err != nil {
		return errors.Wrap(err, "set up allocator")
	}
	if tr != nil {
		defer tr.Close()
	}
	work := workloads[cfg.Workload]

	var rows []metrics.DoublingRow
	var sink int64
	for n := cfg.Start; n <= cfg.Max; n += n {
		in := trialInput{
			ints:    gen.RandomInts(n, cfg.Seed+int64(n)),
			indexes: gen.RandomIndexes(n, cfg.Seed-int64(n)),
		}

		metrics.GC()
		before := metrics.Take()
		durations := make([]time.Duration, cfg.Trials)
		for i := range durations {
			t0 := time.Now()
			sink += work(in, a)
			durations[i] = time.Since(t0)
		}
		after := metrics.Take()
		stats := metrics.StatsFromDurations(durations)
		delta := metrics.Diff(before, after)

		row := metrics.DoublingRow{
			Workload:  cfg.Workload,
			Allocator: cfg.Allocator,
			N:         n,
			Seconds:   stats.P50Sec,
			AllocMB:   float64(delta.AllocBytes) / 1024 / 1024 / float64(cfg.Trials),
			Mallocs:   delta.Mallocs / uint64(cfg.Trials),
		}
		if len(rows) > 0 && rows[len(rows)-1].Seconds > 0 {
			row.Ratio = row.Seconds / rows[len(rows)-1].Seconds
		}
		if am != nil {
			row.InuseBytes = testutil.ToFloat64(am.InuseBytes)
		}
		if tr != nil && tr.Live() > 0 {
			logutil.Warn("试验结束后仍有未释放的分配",
				zap.Int("n", n), zap.Int("live", tr.Live()), zap.Uint64("bytes", tr.LiveBytes()))
		}
		rows = append(rows, row)

		if cfg.Mode == "ratio" {
			fmt.Printf("%9d %9.4f %6.1f\n", n, row.Seconds, row.Ratio)
		} else {
			fmt.Printf("%9d %9.4f\n", n, row.Seconds)
		}
	}
	logutil.Debug("checksum", zap.Int64("sum", sink))

	path := metrics.ReportPath(cfg.ReportDir, "doubling_"+cfg.Workload+"_"+cfg.Allocator+"_", ".csv")
	if err := metrics.WriteDoublingCSV(rows, path); err != nil {
		return err
	}
	fmt.Printf("报告已写入 %s\n", path)

	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	if len(families) > 0 {
		mpath := metrics.ReportPath(cfg.ReportDir, "alloc_metrics_"+cfg.Allocator+"_", ".json")
		if err := metrics.WriteJSON(families, mpath); err != nil {
			return err
		}
		fmt.Printf("分配器指标已写入 %s\n", mpath)
	}
	return nil
}
