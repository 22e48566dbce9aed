// Package metrics 提供运行时指标采集与报告输出
package metrics

import (
	"runtime"
	"runtime/debug"
	"time"
)

// Snapshot 运行时内存快照
type Snapshot struct {
	TS         time.Time
	HeapAlloc  uint64
	TotalAlloc uint64
	Mallocs    uint64
	Frees      uint64
	NumGC      uint32
}

// Take 采集当前运行时指标
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:         time.Now(),
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		Frees:      m.Frees,
		NumGC:      m.NumGC,
	}
}

// GC 触发 GC 并释放回 OS，使相邻两次试验互不干扰
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Delta 两次快照之间 Go 堆上的变化
type Delta struct {
	AllocBytes uint64 // 累计分配字节
	Mallocs    uint64 // 累计分配次数
	LiveObjs   int64  // 存活对象增减
	GCs        uint32
}

// Diff 计算 before 到 after 的 Go 堆变化；off-heap 与 mmap 分配不计入
func Diff(before, after Snapshot) Delta {
	var d Delta
	if after.TotalAlloc >= before.TotalAlloc {
		d.AllocBytes = after.TotalAlloc - before.TotalAlloc
	}
	if after.Mallocs >= before.Mallocs {
		d.Mallocs = after.Mallocs - before.Mallocs
	}
	d.LiveObjs = (int64(after.Mallocs) - int64(after.Frees)) - (int64(before.Mallocs) - int64(before.Frees))
	if after.NumGC >= before.NumGC {
		d.GCs = after.NumGC - before.NumGC
	}
	return d
}
