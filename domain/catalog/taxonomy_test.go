package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategoryExactL2Name(t *testing.T) {
	meta := ResolveCategory("切尔西靴", "", "切尔西靴 0001", "", "主线")
	assert.Equal(t, "靴类", meta.CategoryL1)
	assert.Equal(t, "切尔西靴", meta.CategoryL2)
	assert.True(t, meta.Matched)
}

func TestResolveCategoryLegacyL1Alias(t *testing.T) {
	meta := ResolveCategory("运动鞋", "", "", "", "")
	assert.Equal(t, "休闲/街头", meta.CategoryL1)
	assert.True(t, meta.Matched)

	meta = ResolveCategory("凉鞋拖鞋", "", "", "", "")
	assert.Equal(t, "凉拖鞋", meta.CategoryL1)
}

func TestResolveCategoryLegacyL2Alias(t *testing.T) {
	meta := ResolveCategory("", "", "", "跑步", "")
	assert.Equal(t, "休闲/街头", meta.CategoryL1)
	assert.Equal(t, "阿甘鞋", meta.CategoryL2)
}

func TestResolveCategoryProductLine(t *testing.T) {
	meta := ResolveCategory("未知", "X1", "S1", "", "专业跑步")
	assert.Equal(t, "休闲/街头", meta.CategoryL1)
	assert.Equal(t, "阿甘鞋", meta.CategoryL2)
	assert.True(t, meta.Matched)
}

func TestResolveCategoryFallback(t *testing.T) {
	meta := ResolveCategory("未知品类", "", "", "", "")
	assert.Equal(t, "休闲/街头", meta.CategoryL1)
	assert.Equal(t, "板鞋", meta.CategoryL2)
	assert.False(t, meta.Matched)

	meta = ResolveCategory("", "", "", "", "")
	assert.Equal(t, "未定义品类", meta.RawCategory)
}

func TestCategoryL1Order(t *testing.T) {
	order := CategoryL1Order()
	assert.Equal(t, "户外鞋", order[0])
	assert.Equal(t, "其他", order[len(order)-1])
}

func TestSubCategoriesOf(t *testing.T) {
	assert.Contains(t, SubCategoriesOf("靴类"), "切尔西靴")
	assert.Equal(t, []string{"其他"}, SubCategoriesOf("其他"))
	assert.Nil(t, SubCategoriesOf("不存在"))
}

func TestMatchCategoryL1(t *testing.T) {
	sku := DimSku{SkuID: "S1", SkuName: "切尔西靴 0001", CategoryID: "切尔西靴", CategoryName: "切尔西靴"}

	assert.True(t, MatchCategoryL1("all", sku))
	assert.True(t, MatchCategoryL1("切尔西靴", sku))
	assert.True(t, MatchCategoryL1("靴类", sku))
	assert.False(t, MatchCategoryL1("凉拖鞋", sku))
}

func TestMatchCategoryL2(t *testing.T) {
	sku := DimSku{SkuID: "S1", CategoryName: "拖鞋"}

	assert.True(t, MatchCategoryL2("all", sku))
	assert.True(t, MatchCategoryL2("拖鞋", sku))
	assert.False(t, MatchCategoryL2("凉鞋", sku))
}
