package redisx

import "time"

const (
	// Cached order body: order:{order_id} -> order JSON. Orders are
	// immutable after creation, so the cache never needs invalidation.
	KeyOrder = "order:%s"
)

var TTLOrder = 15 * time.Minute
