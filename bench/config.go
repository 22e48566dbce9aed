package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ic-timon/algs4/logutil"
)

// benchConfig 压测参数，可由 TOML 文件提供，命令行参数覆盖
type benchConfig struct {
	Mode      string            `toml:"mode"`      // doubling | ratio | leak
	Workload  string            `toml:"workload"`  // push | insert | heapsort | queue
	Allocator string            `toml:"allocator"` // heap | offheap | mmap
	Start     int               `toml:"start"`     // 首轮规模
	Max       int               `toml:"max"`       // 规模上限（含）
	Trials    int               `toml:"trials"`    // 每个规模的试验次数
	Seed      int64             `toml:"seed"`
	ReportDir string            `toml:"report-dir"`
	Log       logutil.LogConfig `toml:"log"`
}

func defaultBenchConfig() *benchConfig {
	return &benchConfig{
		Mode:      "doubling",
		Workload:  "push",
		Allocator: "heap",
		Start:     250,
		Max:       1 << 20,
		Trials:    3,
		Seed:      42,
		ReportDir: "report",
		Log:       *logutil.DefaultLogConfig(),
	}
}

// loadBenchConfig 读取 path（为空则使用默认值），未出现的键保留默认值
func loadBenchConfig(path string) (*benchConfig, error) {
	cfg := defaultBenchConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("%s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.validate()
}

func (c *benchConfig) validate() error {
	switch c.Mode {
	case "doubling", "ratio", "leak":
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if _, ok := workloads[c.Workload]; !ok {
		return errors.Errorf("unknown workload %q", c.Workload)
	}
	switch c.Allocator {
	case "heap", "offheap", "mmap":
	default:
		return errors.Errorf("unknown allocator %q", c.Allocator)
	}
	if c.Start <= 0 || c.Max < c.Start {
		return errors.Errorf("bad size range [%d, %d]", c.Start, c.Max)
	}
	if c.Trials <= 0 {
		return errors.Errorf("trials must be positive, got %d", c.Trials)
	}
	return nil
}
