// Package report renders an engine result into a markdown briefing. The web
// summary panel converts it to HTML; the CLI writes it straight to a file.
package report

import (
	"fmt"
	"strings"

	"merchops/domain/sales"
	"merchops/internal/analysis/categoryops"
)

// Markdown renders the briefing for one engine run.
func Markdown(res *categoryops.Result, filters sales.Filters) string {
	var b strings.Builder

	b.WriteString("# 品类×价格带运营分析摘要\n\n")
	fmt.Fprintf(&b, "筛选：%s · 对比口径：%s\n\n", filterSummary(filters), res.CompareMeta.ModeLabel)
	if res.CompareMeta.Note != "" {
		fmt.Fprintf(&b, "> %s\n\n", res.CompareMeta.Note)
	}

	b.WriteString("## 核心指标\n\n")
	b.WriteString("| 指标 | 当前 | 差值 |\n| --- | --- | --- |\n")
	for _, kpi := range res.BusinessKpis {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			kpi.Title, formatValue(kpi.Value, kpi.ValueKind), formatDelta(kpi.DeltaValue, kpi.DeltaKind))
	}
	b.WriteString("\n")

	if len(res.PlanBiasCards) > 0 && res.CompareMeta.Mode == categoryops.ComparePlan {
		b.WriteString("## 计划达成\n\n")
		for _, card := range res.PlanBiasCards {
			fmt.Fprintf(&b, "- **%s**：%s / %s（%s）\n", card.Title, card.ActualLabel, card.PlanLabel, card.GapLabel)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 洞察\n\n")
	fmt.Fprintf(&b, "**发现**：%s\n\n", res.Insight.Finding)
	fmt.Fprintf(&b, "**归因**：%s\n\n", res.Insight.Cause)
	if len(res.Insight.Actions) > 0 {
		b.WriteString("**建议动作**：\n\n")
		for _, action := range res.Insight.Actions {
			fmt.Fprintf(&b, "- %s\n", action)
		}
		b.WriteString("\n")
	}

	groups := res.Insight.CategoryGroups
	b.WriteString("## 品类四象限\n\n")
	fmt.Fprintf(&b, "- 现金流品类：%s\n", joinOrDash(groups.Cashflow))
	fmt.Fprintf(&b, "- 潜力品类：%s\n", joinOrDash(groups.Potential))
	fmt.Fprintf(&b, "- 预警品类：%s\n", joinOrDash(groups.Warning))
	fmt.Fprintf(&b, "- 观察品类：%s\n\n", joinOrDash(groups.Research))

	if len(res.OtbSuggestions) > 0 {
		b.WriteString("## OTB 权重建议\n\n")
		b.WriteString("| 品类 | 现占比 | 建议权重 | 调整 | 理由 |\n| --- | --- | --- | --- | --- |\n")
		for _, otb := range res.OtbSuggestions {
			fmt.Fprintf(&b, "| %s | %.1f%% | %.1f%% | %+.1fpp | %s |\n",
				otb.Category, otb.SalesShare*100, otb.SuggestedWeight*100, otb.DeltaPp, otb.Reason)
		}
		b.WriteString("\n")
	}

	if len(res.SkuActionRows) > 0 {
		rows := res.SkuActionRows
		if len(rows) > 10 {
			rows = rows[:10]
		}
		b.WriteString("## 重点 SKU 动作（前 10）\n\n")
		b.WriteString("| SKU | 品类 | 价格带 | 售罄 | 动作 | 理由 |\n| --- | --- | --- | --- | --- | --- |\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "| %s | %s | %s | %.1f%% | %s | %s |\n",
				row.SkuID, row.Category, row.PriceBandLabel, row.SellThrough*100, row.Action, row.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatValue(v float64, kind string) string {
	switch kind {
	case "amount":
		return fmt.Sprintf("%.1f万", v/1e4)
	case "percent":
		return fmt.Sprintf("%.1f%%", v*100)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func formatDelta(delta *float64, kind string) string {
	if delta == nil {
		return "—"
	}
	if kind == "pp" {
		return fmt.Sprintf("%+.1fpp", *delta*100)
	}
	return fmt.Sprintf("%+.1f%%", *delta*100)
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, "、")
}

func filterSummary(f sales.Filters) string {
	parts := []string{}
	add := func(label, v string) {
		if v != sales.All && v != "" {
			parts = append(parts, label+v)
		}
	}
	add("", f.SeasonYear)
	add("", f.Season)
	add("品类:", f.CategoryID)
	add("子品类:", f.SubCategory)
	add("渠道:", f.ChannelType)
	add("价格带:", f.PriceBand)
	add("生命周期:", f.Lifecycle)
	add("区域:", f.Region)
	if len(parts) == 0 {
		return "全部"
	}
	return strings.Join(parts, " · ")
}
