/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bucketpool keeps byte buffers in size classes so that callers
// needing buffers of varying sizes can reuse them.
package bucketpool

import "sync"

type sizedPool struct {
	size int
	pool sync.Pool
}

func newSizedPool(size int) *sizedPool {
	return &sizedPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, size)
				return &b
			},
		},
	}
}

// Pool is a set of buffer pools whose sizes double from minSize up to
// maxSize. The last size class is maxSize itself.
type Pool struct {
	minSize int
	maxSize int
	pools   []*sizedPool
}

// New returns a Pool for buffers between minSize and maxSize bytes.
// Larger requests are allocated and never pooled.
func New(minSize, maxSize int) *Pool {
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		panic("bucketpool: maxSize can't be less than minSize")
	}
	var pools []*sizedPool
	for size := minSize; size < maxSize; size *= 2 {
		pools = append(pools, newSizedPool(size))
	}
	pools = append(pools, newSizedPool(maxSize))
	return &Pool{
		minSize: minSize,
		maxSize: maxSize,
		pools:   pools,
	}
}

// findPool returns the smallest size class that holds size bytes, or nil.
func (p *Pool) findPool(size int) *sizedPool {
	if size > p.maxSize {
		return nil
	}
	for _, sp := range p.pools {
		if size <= sp.size {
			return sp
		}
	}
	return nil
}

// Get returns a buffer of length size. Its capacity is the size of its
// class, or exactly size when it is larger than the largest class.
func (p *Pool) Get(size int) *[]byte {
	sp := p.findPool(size)
	if sp == nil {
		b := make([]byte, size)
		return &b
	}
	buf := sp.pool.Get().(*[]byte)
	*buf = (*buf)[:size]
	return buf
}

// Put returns a buffer obtained from Get. Buffers that match no size class
// are dropped.
func (p *Pool) Put(b *[]byte) {
	sp := p.findPool(cap(*b))
	if sp == nil || sp.size != cap(*b) {
		return
	}
	*b = (*b)[:cap(*b)]
	sp.pool.Put(b)
}
