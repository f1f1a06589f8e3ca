package catalog

import "strings"

// CategoryMeta is the canonical taxonomy placement of a SKU. Raw source
// categories are free text; the resolver accepts legacy names, canonical
// names, and keyword matches so a filter value in either vocabulary lands on
// the same L1/L2 pair.
type CategoryMeta struct {
	RawCategory string
	CategoryL1  string
	CategoryL2  string
	Matched     bool
}

const fallbackL1 = "休闲/街头"

type taxonomyGroup struct {
	l1  string
	l2s []string
}

// Canonical footwear taxonomy, in display order.
var taxonomyGroups = []taxonomyGroup{
	{"户外鞋", []string{"徒步登山", "溯溪鞋", "越野鞋", "潮流机能"}},
	{"休闲/街头", []string{"板鞋", "老爹鞋", "德训鞋", "阿甘鞋", "帆布鞋"}},
	{"时尚/通勤", []string{"浅口单鞋", "芭蕾舞鞋", "玛丽珍鞋"}},
	{"正装/通勤", []string{"乐福鞋", "牛津鞋", "德比鞋", "豆豆鞋", "穆勒鞋"}},
	{"靴类", []string{"裸靴", "切尔西靴", "马丁靴", "长筒靴", "雪地靴", "短靴"}},
	{"凉拖鞋", []string{"凉鞋", "洞洞鞋", "拖鞋", "前空鞋", "中空鞋", "后空鞋"}},
	{"童鞋", []string{"学步鞋", "校园鞋", "雨靴"}},
	{"配件", []string{"鞋垫", "鞋带", "袜品"}},
}

// Legacy flat category names carried by older dim_sku exports.
var legacyL1Alias = map[string]string{
	"运动鞋":  fallbackL1,
	"户外鞋":  "户外鞋",
	"休闲鞋":  fallbackL1,
	"休闲":   fallbackL1,
	"通勤鞋":  "正装/通勤",
	"皮鞋":   "正装/通勤",
	"靴鞋":   "靴类",
	"凉鞋拖鞋": "凉拖鞋",
}

var legacyL2Alias = map[string]string{
	"跑步": "阿甘鞋",
	"竞速": "阿甘鞋",
	"篮球": "板鞋",
	"综训": "德训鞋",
	"训练": "德训鞋",
}

var productLineAlias = map[string]struct{ l1, l2 string }{
	"户外机能":  {"户外鞋", "潮流机能"},
	"通勤轻商务": {"正装/通勤", "乐福鞋"},
	"专业跑步":  {fallbackL1, "阿甘鞋"},
	"竞技篮球":  {fallbackL1, "板鞋"},
	"轻运动训练": {fallbackL1, "德训鞋"},
}

var l1ExtraKeywords = map[string][]string{
	"户外鞋":   {"户外", "徒步", "登山", "溯溪", "越野", "机能", "outdoor", "hiking", "trail"},
	"休闲/街头": {"休闲", "街头", "板鞋", "老爹", "德训", "阿甘", "帆布", "运动鞋", "跑步", "竞速", "篮球", "综训", "running", "basket"},
	"时尚/通勤": {"时尚", "通勤", "浅口", "芭蕾", "玛丽珍", "fashion"},
	"正装/通勤": {"正装", "商务", "乐福", "牛津", "德比", "豆豆", "穆勒", "loafer", "oxford", "derby"},
	"靴类":    {"靴", "短靴", "切尔西", "马丁", "长筒", "雪地", "boot"},
	"凉拖鞋":   {"凉鞋", "洞洞", "拖鞋", "前空", "中空", "后空", "sandal", "slipper"},
	"童鞋":    {"童鞋", "学步", "校园", "雨靴", "kids", "kid"},
	"配件":    {"鞋垫", "鞋带", "袜", "配件", "accessory"},
}

var l2ExtraKeywords = map[string]map[string][]string{
	"休闲/街头": {
		"阿甘鞋": {"跑步", "竞速", "running", "race"},
		"板鞋":  {"篮球", "basket"},
		"德训鞋": {"综训", "训练", "training", "cross"},
	},
	"正装/通勤": {
		"乐福鞋": {"通勤轻商务", "通勤", "商务"},
	},
}

// CategoryL1Order returns canonical L1 names in display order plus the
// trailing "其他" bucket.
func CategoryL1Order() []string {
	out := make([]string, 0, len(taxonomyGroups)+1)
	for _, g := range taxonomyGroups {
		out = append(out, g.l1)
	}
	return append(out, "其他")
}

// SubCategoriesOf returns the L2 names under an L1, or nil for unknown L1.
func SubCategoriesOf(l1 string) []string {
	for _, g := range taxonomyGroups {
		if g.l1 == l1 {
			return append([]string(nil), g.l2s...)
		}
	}
	if l1 == "其他" {
		return []string{"其他"}
	}
	return nil
}

func normalizeText(v string) string {
	v = strings.ToLower(v)
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "", "/", "")
	return replacer.Replace(v)
}

func l1ByL2(l2 string) string {
	for _, g := range taxonomyGroups {
		for _, sub := range g.l2s {
			if sub == l2 {
				return g.l1
			}
		}
	}
	return ""
}

func findL1ByText(text string) string {
	normalized := normalizeText(text)
	if normalized == "" {
		return ""
	}
	for _, g := range taxonomyGroups {
		keywords := append([]string{g.l1}, g.l2s...)
		keywords = append(keywords, l1ExtraKeywords[g.l1]...)
		for _, kw := range keywords {
			if strings.Contains(normalized, normalizeText(kw)) {
				return g.l1
			}
		}
	}
	return ""
}

func resolveL2(l1, sourceText, preferredL2 string) string {
	options := SubCategoriesOf(l1)
	if len(options) == 0 {
		return "其他"
	}
	preferred := strings.TrimSpace(preferredL2)
	for _, opt := range options {
		if opt == preferred {
			return preferred
		}
	}
	normalized := normalizeText(sourceText)
	extra := l2ExtraKeywords[l1]
	for _, opt := range options {
		keywords := append([]string{opt}, extra[opt]...)
		for _, kw := range keywords {
			if strings.Contains(normalized, normalizeText(kw)) {
				return opt
			}
		}
	}
	return options[0]
}

// ResolveCategory places a SKU into the canonical taxonomy. Resolution order:
// explicit L2, exact/legacy L1 name, keyword scan over all name fields,
// product-line alias, then the fallback L1.
func ResolveCategory(categoryName, categoryID, skuName, rawL2, productLine string) CategoryMeta {
	rawCategory := strings.TrimSpace(categoryName)
	if rawCategory == "" {
		rawCategory = strings.TrimSpace(categoryID)
	}
	if rawCategory == "" {
		rawCategory = "未定义品类"
	}

	explicitL2 := strings.TrimSpace(rawL2)
	if alias, ok := legacyL2Alias[explicitL2]; ok {
		explicitL2 = alias
	}
	l1FromL2 := ""
	if explicitL2 != "" {
		l1FromL2 = l1ByL2(explicitL2)
	}

	rawL1 := strings.TrimSpace(categoryName)
	if rawL1 == "" {
		rawL1 = strings.TrimSpace(categoryID)
	}
	normalizedL1 := legacyL1Alias[rawL1]
	if normalizedL1 == "" && SubCategoriesOf(rawL1) != nil && rawL1 != "其他" {
		normalizedL1 = rawL1
	}

	lineAlias, hasLineAlias := productLineAlias[strings.TrimSpace(productLine)]

	source := categoryName + " " + categoryID + " " + skuName + " " + productLine
	l1FromText := findL1ByText(source)

	l1 := l1FromL2
	if l1 == "" {
		l1 = normalizedL1
	}
	if l1 == "" {
		l1 = l1FromText
	}
	if l1 == "" && hasLineAlias {
		l1 = lineAlias.l1
	}
	if l1 == "" {
		l1 = fallbackL1
	}

	l2 := ""
	if explicitL2 != "" {
		for _, opt := range SubCategoriesOf(l1) {
			if opt == explicitL2 {
				l2 = explicitL2
				break
			}
		}
	}
	if l2 == "" {
		preferred := ""
		if hasLineAlias {
			preferred = lineAlias.l2
		}
		l2 = resolveL2(l1, source, preferred)
	}

	return CategoryMeta{
		RawCategory: rawCategory,
		CategoryL1:  l1,
		CategoryL2:  l2,
		Matched:     l1FromL2 != "" || normalizedL1 != "" || l1FromText != "" || hasLineAlias,
	}
}

// MatchCategoryL1 reports whether a SKU belongs to the selected L1 category.
// The filter value may be a canonical or raw/legacy name.
func MatchCategoryL1(selected string, sku DimSku) bool {
	if selected == "all" || selected == "" {
		return true
	}
	if sku.CategoryID == selected || sku.CategoryName == selected {
		return true
	}
	meta := ResolveCategory(sku.CategoryName, sku.CategoryID, sku.SkuName, sku.CategoryL2, sku.ProductLine)
	return meta.CategoryL1 == selected
}

// MatchCategoryL2 reports whether a SKU belongs to the selected L2 category.
func MatchCategoryL2(selected string, sku DimSku) bool {
	if selected == "all" || selected == "" {
		return true
	}
	direct := strings.TrimSpace(sku.CategoryL2)
	if alias, ok := legacyL2Alias[direct]; ok {
		direct = alias
	}
	if direct == selected {
		return true
	}
	meta := ResolveCategory(sku.CategoryName, sku.CategoryID, sku.SkuName, sku.CategoryL2, sku.ProductLine)
	return meta.CategoryL2 == selected
}
