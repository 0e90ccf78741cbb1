package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Skufu/dietplan/internal/bmi"
	"github.com/Skufu/dietplan/internal/chart"
	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/report"
)

var (
	green = lipgloss.Color("#00CC66")
	amber = lipgloss.Color("#FFCC00")
	red   = lipgloss.Color("#FF4B4B")

	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(green)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(green)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(green).Padding(0, 1).Width(26)
)

var bandColors = map[bmi.Band]lipgloss.Color{
	bmi.Underweight: amber,
	bmi.Normal:      green,
	bmi.Overweight:  red,
}

func renderReport(r *report.Report) string {
	sections := []string{
		bannerStyle.Render("Recommended Diet Type: " + string(r.Category)),
		lipgloss.NewStyle().Foreground(bandColors[r.BMI.Band]).Render(r.BMI.String()),
		"",
		headerStyle.Render("Daily Diet Plan"),
		renderMealCards(r.Meals),
		fmt.Sprintf("Total %d kcal | Protein %d%% Carbs %d%% Fat %d%%",
			r.TotalCalories, r.Macros.Protein, r.Macros.Carbs, r.Macros.Fat),
		"",
		headerStyle.Render("Weekly Diet Plan"),
		renderWeek(r),
		"",
		headerStyle.Render("Suggested Grocery List"),
		renderList(r.Grocery),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderMealCards(meals []diet.Meal) string {
	cards := make([]string, 0, len(meals))
	for _, m := range meals {
		body := titleStyle.Render(string(m.Slot)) + "\n" + m.Recommendation + "\n" + fmt.Sprintf("%d kcal", m.Calories)
		cards = append(cards, cardStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderWeek(r *report.Report) string {
	headers := []string{""}
	for _, s := range diet.Slots() {
		headers = append(headers, string(s))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(green)).
		Headers(headers...)
	for _, d := range r.Week {
		t.Row(append([]string{d.Day}, d.Meals...)...)
	}
	return t.Render()
}

func renderList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + item)
	}
	return b.String()
}

func renderTemplate(t diet.Template) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(string(t.Category)),
		renderMealCards(t.Meals),
		fmt.Sprintf("Protein %d%% Carbs %d%% Fat %d%% | Grocery: %s",
			t.Macros.Protein, t.Macros.Carbs, t.Macros.Fat, strings.Join(t.Grocery, ", ")),
	)
}

func renderChart(rec *chart.Recommendation) string {
	lines := []string{bannerStyle.Render("Recommended Diet: " + string(rec.Category))}
	for _, e := range rec.Chart {
		lines = append(lines, titleStyle.Render(string(e.Slot)+":")+" "+e.Item)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
