package catalog

import "strings"

// Lifecycle classifies a SKU's merchandising stage. Source data carries the
// stage as free text; NormalizeLifecycle folds it into this closed set before
// any record enters the aggregator.
type Lifecycle string

const (
	LifecycleNew       Lifecycle = "new"
	LifecycleCore      Lifecycle = "core"
	LifecycleClearance Lifecycle = "clearance"
	LifecycleOther     Lifecycle = "other"
)

// NormalizeLifecycle maps a raw lifecycle string (Chinese or English, any
// casing) onto the closed enum. Unrecognized values fold into LifecycleOther.
func NormalizeLifecycle(raw string) Lifecycle {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return LifecycleOther
	case strings.Contains(v, "new") || strings.Contains(v, "新"):
		return LifecycleNew
	case strings.Contains(v, "clear") || strings.Contains(v, "清") || strings.Contains(v, "尾"):
		return LifecycleClearance
	case strings.Contains(v, "core") || strings.Contains(v, "carry") ||
		strings.Contains(v, "核") || strings.Contains(v, "常青") || strings.Contains(v, "延续"):
		return LifecycleCore
	default:
		return LifecycleOther
	}
}

// InventoryFactor dampens on-hand units when deriving effective sell-through.
// Stale clearance stock should not count 1:1 against a new item's velocity.
func (l Lifecycle) InventoryFactor() float64 {
	switch l {
	case LifecycleNew:
		return 0.95
	case LifecycleCore:
		return 0.85
	case LifecycleClearance:
		return 0.65
	default:
		return 0.80
	}
}

// Label returns the zh-CN display label used by dashboard tables.
func (l Lifecycle) Label() string {
	switch l {
	case LifecycleNew:
		return "新品"
	case LifecycleCore:
		return "核心款"
	case LifecycleClearance:
		return "清仓款"
	default:
		return "其他"
	}
}
