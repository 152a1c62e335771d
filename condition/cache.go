/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package condition

import (
	"sync"

	"github.com/dchest/siphash"
)

// 缓存键的 siphash 密钥，只用于分桶，不需要保密
const (
	cacheKey0 uint64 = 0x736f6d6570736575
	cacheKey1 uint64 = 0x646f72616e646f6d
)

type cacheEntry struct {
	key       string
	predicate *CompiledPredicate
}

// predicateCache 以 (规范化表达式, schema) 为键的编译缓存，超过容量时淘汰最早的条目
type predicateCache struct {
	mu      sync.RWMutex
	max     int
	entries map[uint64]cacheEntry
	order   []uint64
}

// newPredicateCache max 为 0 表示不限容量
func newPredicateCache(max int) *predicateCache {
	return &predicateCache{
		max:     max,
		entries: make(map[uint64]cacheEntry),
	}
}

func cacheKey(expression string, schema string) (uint64, string) {
	key := expression + "\x00" + schema
	return siphash.Hash(cacheKey0, cacheKey1, []byte(key)), key
}

func (c *predicateCache) get(expression, schema string) (*CompiledPredicate, bool) {
	h, key := cacheKey(expression, schema)
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[h]
	if !ok || entry.key != key {
		return nil, false
	}
	return entry.predicate, true
}

func (c *predicateCache) put(expression, schema string, p *CompiledPredicate) *CompiledPredicate {
	h, key := cacheKey(expression, schema)
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[h]; ok {
		if entry.key == key {
			// 并发编译同一表达式时保留先写入的结果
			return entry.predicate
		}
		// 哈希冲突，覆盖旧条目
		c.entries[h] = cacheEntry{key: key, predicate: p}
		return p
	}
	if c.max > 0 && len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[h] = cacheEntry{key: key, predicate: p}
	c.order = append(c.order, h)
	return p
}

func (c *predicateCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
