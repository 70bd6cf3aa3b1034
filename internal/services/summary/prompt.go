package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/lumen/internal/models"
)

const dateLayout = "2006-01-02"

const summaryInstruction = `You are a medical summarization assistant. Summarize the following medical records for a patient.

Requirements:
- Write a concise, chronologically organized, bullet-point summary.
- Use plain language a layperson can understand.
- Preserve all diagnoses, treatments, medications, and test results.
- Omit boilerplate and irrelevant filler.
- Mark irregularities and important details in bold using **double asterisks**.

Medical records:

`

// BuildPrompt folds one or more dated text records into a single
// instruction prompt. Records are sorted ascending by timestamp so the
// generated summary reads chronologically; input order never affects the
// constructed prompt.
func BuildPrompt(records []models.MedicalHistoryRecord) string {
	sorted := make([]models.MedicalHistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var b strings.Builder
	b.WriteString(summaryInstruction)
	for _, record := range sorted {
		fmt.Fprintf(&b, "Date: %s\nMedical Text: %s\n\n",
			record.Timestamp.Format(dateLayout), record.ExtractedText)
	}
	return b.String()
}
