package main

import (
	"github.com/ic-timon/algs4/pq"
	"github.com/ic-timon/algs4/queue"
	"github.com/ic-timon/algs4/vec"
	"github.com/ic-timon/algs4/vec/alloc"
)

// trialInput 单次试验的输入
type trialInput struct {
	ints    []int64
	indexes []int // insert 负载的插入位置
}

// workload 执行一次试验并释放它申请的全部内存，返回值用于防止结果被优化掉
type workload func(in trialInput, a alloc.Allocator) int64

var workloads = map[string]workload{
	"push":     pushWorkload,
	"insert":   insertWorkload,
	"heapsort": heapSortWorkload,
	"queue":    queueWorkload,
}

func pushWorkload(in trialInput, a alloc.Allocator) int64 {
	v := vec.NewWithConfig[int64](&vec.Config{Allocator: a})
	defer v.Free()
	for _, x := range in.ints {
		v.Push(x)
	}
	var sum int64
	for {
		x, ok := v.Pop()
		if !ok {
			return sum
		}
		sum += x
	}
}

// insertWorkload 在随机位置插入，O(n^2)
func insertWorkload(in trialInput, a alloc.Allocator) int64 {
	v := vec.NewWithConfig[int64](&vec.Config{Allocator: a})
	defer v.Free()
	for i, x := range in.ints {
		v.Insert(in.indexes[i], x)
	}
	return v.Slice()[v.Len()/2]
}

func heapSortWorkload(in trialInput, a alloc.Allocator) int64 {
	v := vec.NewWithConfig[int64](&vec.Config{Allocator: a, InitialCapacity: len(in.ints)})
	defer v.Free()
	for _, x := range in.ints {
		v.Push(x)
	}
	pq.HeapSort(v.Slice())
	return v.Slice()[0]
}

func queueWorkload(in trialInput, a alloc.Allocator) int64 {
	q := queue.NewWithAllocator[int64](a)
	defer q.Free()
	var sum int64
	for i, x := range in.ints {
		q.Enqueue(x)
		if i%3 == 2 {
			y, _ := q.Dequeue()
			sum += y
		}
	}
	for !q.IsEmpty() {
		y, _ := q.Dequeue()
		sum += y
	}
	return sum
}
