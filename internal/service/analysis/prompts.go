package analysis

import (
	"strings"
	"text/template"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/analysis"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/llm"
)

var workAnalysisPrompt = template.Must(template.New("work-analysis").Parse(
	`You are a construction foreman who estimates the materials needed for site work.

The following text lists work descriptions, separated by commas or new lines:

{{.WorkDescriptions}}

For each kind of task described, summarize the materials it commonly uses and their typical quantities.
`))

var dailySummaryPrompt = template.Must(template.New("daily-summary").Parse(
	`You assist a construction site manager. Summarize the labor activity recorded on {{.Date}}.

Cover:
- how many laborers were present and how many were absent
- the kinds of work the present laborers did
- the total advance paid out that day
- anything notable, such as everyone being absent or a critical task being mentioned

Keep it short and factual.

Daily Entries:
{{range .Entries}}- Laborer: {{.LaborerName}}
  Status: {{if .IsPresent}}Present{{else}}Absent{{end}}
{{- if .IsPresent}}
  Work Details: {{.WorkDetails}}
{{- end}}
  Advance Paid: ₹{{.AdvancePaid}}
{{else}}No entries provided for this date.
{{end}}
Write the summary from these entries.
`))

var workAnalysisSchema = llm.OutputSchema{
	Name: "AnalyzeWorkDescriptionsOutput",
	Fields: []llm.Field{
		{Name: "materialEstimates", Description: "A summary of commonly used material quantities for the described tasks."},
	},
}

var dailySummarySchema = llm.OutputSchema{
	Name: "SummarizeDailyActivityOutput",
	Fields: []llm.Field{
		{Name: "summary", Description: "A concise natural language summary of the day's labor activity."},
	},
}

func renderWorkAnalysisPrompt(req analysis.AnalyzeWorkRequest) (string, error) {
	var b strings.Builder
	if err := workAnalysisPrompt.Execute(&b, req); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderDailySummaryPrompt(req analysis.SummarizeDailyActivityRequest) (string, error) {
	var b strings.Builder
	if err := dailySummaryPrompt.Execute(&b, req); err != nil {
		return "", err
	}
	return b.String(), nil
}
