// Package aggregate реализует вычисление сводных показателей
// по записям об использовании AI-инструментов. Все агрегаты считаются
// при чтении по уже выбранным записям и нигде не сохраняются.
package aggregate

import (
	"sort"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// MonthlySummary группирует записи по названию инструмента и считает
// по каждой группе суммарное использование, среднее время ответа,
// долю успешных запросов, токены и стоимость.
//
// Среднее время ответа — невзвешенное среднее значений по записям,
// а итоговый success rate — невзвешенное среднее по группам: так считал
// исходный отчёт, и это поведение сохранено намеренно.
// При нулевом знаменателе success rate группы равен 0, чтобы в ответ
// не попадали нечисловые значения.
func MonthlySummary(records []*models.UsageRecord) models.UsageSummary {
	byTool := make(map[string][]*models.UsageRecord)
	for _, record := range records {
		byTool[record.ToolName] = append(byTool[record.ToolName], record)
	}

	toolNames := make([]string, 0, len(byTool))
	for name := range byTool {
		toolNames = append(toolNames, name)
	}
	sort.Strings(toolNames)

	summary := models.UsageSummary{
		MonthlyData: make([]models.MonthlyToolSummary, 0, len(toolNames)),
	}

	var successRateSum float64
	for _, name := range toolNames {
		group := byTool[name]

		var toolSummary models.MonthlyToolSummary
		toolSummary.ToolName = name

		var responseTimeSum float64
		var successful, failed int
		for _, record := range group {
			toolSummary.TotalUsage += record.UsageCount
			responseTimeSum += record.AverageResponseTime
			successful += record.SuccessfulRequests
			failed += record.FailedRequests
			toolSummary.TotalTokens += record.TokensUsed
			toolSummary.TotalCost += record.EstimatedCost
		}
		toolSummary.AverageResponseTime = responseTimeSum / float64(len(group))
		if successful+failed > 0 {
			toolSummary.SuccessRate = float64(successful) * 100.0 / float64(successful+failed)
		}

		summary.MonthlyData = append(summary.MonthlyData, toolSummary)
		summary.TotalRequests += toolSummary.TotalUsage
		summary.TotalCost += toolSummary.TotalCost
		successRateSum += toolSummary.SuccessRate
	}

	if len(summary.MonthlyData) > 0 {
		summary.AverageSuccessRate = successRateSum / float64(len(summary.MonthlyData))
	}
	return summary
}

// ProjectStats группирует записи по названию проекта и считает по каждому
// проекту суммарное использование и стоимость с вложенной разбивкой
// по инструментам.
func ProjectStats(records []*models.UsageRecord) []models.ProjectSummary {
	byProject := make(map[string][]*models.UsageRecord)
	for _, record := range records {
		byProject[record.ProjectName] = append(byProject[record.ProjectName], record)
	}

	projectNames := make([]string, 0, len(byProject))
	for name := range byProject {
		projectNames = append(projectNames, name)
	}
	sort.Strings(projectNames)

	result := make([]models.ProjectSummary, 0, len(projectNames))
	for _, name := range projectNames {
		group := byProject[name]

		projectSummary := models.ProjectSummary{ProjectName: name}
		usageByTool := make(map[string]int)
		for _, record := range group {
			projectSummary.TotalUsage += record.UsageCount
			projectSummary.TotalCost += record.EstimatedCost
			usageByTool[record.ToolName] += record.UsageCount
		}

		toolNames := make([]string, 0, len(usageByTool))
		for toolName := range usageByTool {
			toolNames = append(toolNames, toolName)
		}
		sort.Strings(toolNames)

		projectSummary.ToolBreakdown = make([]models.ToolBreakdown, 0, len(toolNames))
		for _, toolName := range toolNames {
			projectSummary.ToolBreakdown = append(projectSummary.ToolBreakdown, models.ToolBreakdown{
				ToolName: toolName,
				Usage:    usageByTool[toolName],
			})
		}

		result = append(result, projectSummary)
	}
	return result
}
