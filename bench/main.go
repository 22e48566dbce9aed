// 压测入口：-mode doubling|ratio|leak
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/logutil"
	"github.com/ic-timon/algs4/vec/alloc"
)

// metricsNamespace 压测注册的 prometheus 指标前缀
const metricsNamespace = "algs4_bench"

func main() {
	configPath := flag.String("config", "", "TOML 配置文件，命令行参数优先")
	mode := flag.String("mode", "", "压测模式: doubling(倍率实验) | ratio(倍率比值) | leak(drain 泄漏演示)")
	workload := flag.String("workload", "", "负载: push | insert | heapsort | queue")
	allocator := flag.String("alloc", "", "分配器: heap | offheap(需 CGO) | mmap")
	start := flag.Int("start", 0, "首轮规模")
	maxN := flag.Int("max", 0, "规模上限")
	trials := flag.Int("trials", 0, "每个规模的试验次数")
	seed := flag.Int64("seed", 0, "随机种子")
	reportDir := flag.String("report", "", "报告输出目录")
	logLevel := flag.String("log-level", "", "日志级别")
	flag.Parse()

	cfg, err := loadBenchConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// 只覆盖命令行上显式给出的参数
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "workload":
			cfg.Workload = *workload
		case "alloc":
			cfg.Allocator = *allocator
		case "start":
			cfg.Start = *start
		case "max":
			cfg.Max = *maxN
		case "trials":
			cfg.Trials = *trials
		case "seed":
			cfg.Seed = *seed
		case "report":
			cfg.ReportDir = *reportDir
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logutil.SetupLogger(&cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logutil.GetGlobalLogger().Sync()

	switch cfg.Mode {
	case "doubling", "ratio":
		err = runDoubling(cfg)
	case "leak":
		err = runLeak(cfg)
	}
	if err != nil {
		logutil.Fatal("压测失败", zap.String("mode", cfg.Mode), zap.Error(err))
	}
	fmt.Println("压测完成")
}

// benchAllocator 按名称构造分配器：raw 分配器外面套一层 Tracker 检查泄漏，再套一层指标统计。
// heap 返回 nil 分配器与 nil tracker，元素直接放在 Go 堆上。
func benchAllocator(name string, reg prometheus.Registerer) (alloc.Allocator, *alloc.Tracker, *alloc.AllocatorMetrics, error) {
	var upstream alloc.Allocator
	switch name {
	case "offheap":
		if !alloc.OffheapAvailable {
			logutil.Warn("off-heap 需要 CGO，回退到 Go 堆", zap.String("allocator", name))
			return nil, nil, nil, nil
		}
		upstream = alloc.NewOffheapAllocator()
	case "mmap":
		upstream = alloc.NewMmapAllocator()
	default:
		return nil, nil, nil, nil
	}
	tr := alloc.NewTracker(upstream)
	am := alloc.NewAllocatorMetrics(metricsNamespace, name)
	if err := am.Register(reg); err != nil {
		tr.Close()
		return nil, nil, nil, err
	}
	return alloc.Wrap(am, tr), tr, am, nil
}
