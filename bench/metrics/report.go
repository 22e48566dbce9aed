package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// TrialStats 同一规模多次试验的耗时统计
type TrialStats struct {
	P50Sec float64
	P99Sec float64
	AvgSec float64
	N      int
}

// DoublingRow 倍率实验单行数据
type DoublingRow struct {
	Workload   string
	Allocator  string
	N          int
	Seconds    float64 // 多次试验的中位数
	Ratio      float64 // 与上一行耗时之比，首行为 0
	AllocMB    float64 // 试验期间 Go 堆累计分配
	Mallocs    uint64
	InuseBytes float64 // 试验结束后分配器仍持有的字节，应为 0
}

// Percentile 计算已排序切片的第 p 百分位（0-100）
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	return sorted[int(float64(len(sorted)-1)*p/100)]
}

// StatsFromDurations 从多次试验的耗时计算 P50/P99/均值
func StatsFromDurations(durations []time.Duration) TrialStats {
	if len(durations) == 0 {
		return TrialStats{}
	}
	secs := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		secs[i] = d.Seconds()
		sum += secs[i]
	}
	slices.Sort(secs)
	return TrialStats{
		P50Sec: Percentile(secs, 50),
		P99Sec: Percentile(secs, 99),
		AvgSec: sum / float64(len(secs)),
		N:      len(secs),
	}
}

// WriteDoublingCSV 写入倍率实验报告
func WriteDoublingCSV(rows []DoublingRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create report dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"Workload", "Allocator", "N", "Seconds", "Ratio", "AllocMB", "Mallocs", "InuseBytes"})
	for _, r := range rows {
		w.Write([]string{
			r.Workload,
			r.Allocator,
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%.6f", r.Seconds),
			fmt.Sprintf("%.2f", r.Ratio),
			fmt.Sprintf("%.2f", r.AllocMB),
			fmt.Sprintf("%d", r.Mallocs),
			fmt.Sprintf("%.0f", r.InuseBytes),
		})
	}
	w.Flush()
	return errors.Wrap(w.Error(), "write report")
}

// ReportPath 生成 dir 目录下带日期的报告路径
func ReportPath(dir, prefix, ext string) string {
	return filepath.Join(dir, prefix+time.Now().Format("20060102")+ext)
}

// WriteJSON 写入 JSON 报告（通用）
func WriteJSON(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create report dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode report")
}
