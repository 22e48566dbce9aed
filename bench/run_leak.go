package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/logutil"
	"github.com/ic-timon/algs4/vec"
)

// resource 被销毁时计数
type resource struct {
	name  string
	drops *int
}

func (r resource) Drop() {
	*r.drops++
}

// leakReport 泄漏演示的观测结果
type leakReport struct {
	DrainDrops      int // Forget 之后被销毁的元素数
	VecLenAfter     int // drain 开始后源 vector 的长度
	ClosedDrops     int // 正常 Close 时被销毁的元素数
	Heap            bool // 缓冲区位于 Go 堆，没有 Tracker 可查
	ReclaimedBuffer int  // 未关闭的 IntoIter 留下、由 Tracker 回收的分配数
}

// runLeak 演示两类泄漏：放弃 drain 时未产出的元素永不销毁；放弃 IntoIter 时缓冲区由 Tracker 兜底回收。
func runLeak(cfg *benchConfig) error {
	r, err := demonstrateLeak(cfg.Allocator)
	if err != nil {
		return err
	}
	wantReclaimed := 1
	if r.Heap {
		wantReclaimed = 0
	}
	fmt.Printf("drain 放弃后销毁元素数: %d（预期 0）\n", r.DrainDrops)
	fmt.Printf("drain 开始后 vector 长度: %d（预期 0）\n", r.VecLenAfter)
	fmt.Printf("drain 正常关闭销毁元素数: %d（预期 2）\n", r.ClosedDrops)
	fmt.Printf("Tracker 回收的缓冲区数: %d（预期 %d）\n", r.ReclaimedBuffer, wantReclaimed)
	if r.DrainDrops != 0 || r.VecLenAfter != 0 || r.ClosedDrops != 2 || r.ReclaimedBuffer != wantReclaimed {
		return errors.Errorf("unexpected leak behaviour: %+v", r)
	}
	logutil.Info("泄漏演示完成", zap.String("allocator", cfg.Allocator))
	return nil
}

// demonstrateLeak 元素销毁部分只能用 Go 堆（resource 含指针）；缓冲区部分使用 allocator 指定的分配器。
func demonstrateLeak(allocator string) (leakReport, error) {
	var r leakReport

	v := vec.New[resource]()
	for _, s := range []string{"hello", "algs4", "rs", "lib"} {
		v.Push(resource{name: s, drops: &r.DrainDrops})
	}
	v.Pop()
	d := v.Drain()
	r.VecLenAfter = v.Len()
	d.Next()
	d.Forget()
	v.Free()

	w := vec.New[resource]()
	for _, s := range []string{"a", "b", "c"} {
		w.Push(resource{name: s, drops: &r.ClosedDrops})
	}
	d = w.Drain()
	d.Next()
	d.Close()
	w.Free()

	a, tr, _, err := benchAllocator(allocator, prometheus.NewRegistry())
	if err != nil {
		return r, errors.Wrap(err, "set up allocator")
	}
	u := vec.NewWithConfig[int64](&vec.Config{Allocator: a})
	for i := int64(0); i < 100; i++ {
		u.Push(i)
	}
	it := u.IntoIter()
	it.Next()
	if tr == nil {
		// Go 堆上的缓冲区由 GC 回收，无从计数
		r.Heap = true
		return r, nil
	}
	r.ReclaimedBuffer = tr.Close()
	return r, nil
}
