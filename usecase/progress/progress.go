package progress

import (
	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/internal/catalog"
)

// Segments is the width of the rendered progress bar.
const Segments = 10

// Render computes a user's progress view from the catalog and the persisted
// completion flags. It is a pure function: the checklist iterates the
// catalog, so completion records whose task left the catalog are ignored
// for both the count and the denominator.
func Render(cat *catalog.Catalog, completions map[string]bool) domain.ProgressView {
	tasks := cat.Tasks()
	total := len(tasks)

	lines := make([]domain.ChecklistLine, 0, total)
	completed := 0
	for _, task := range tasks {
		done := completions[task.ID]
		if done {
			completed++
		}
		lines = append(lines, domain.ChecklistLine{
			Title: task.Title,
			Done:  done,
		})
	}

	percent := 0
	if total > 0 {
		// Integer division truncates: 89% fills 8 segments, not 9, and the
		// bar only fills completely at exactly 100%.
		percent = 100 * completed / total
	}

	return domain.ProgressView{
		Percent:        percent,
		FilledSegments: percent / Segments,
		Completed:      completed,
		Total:          total,
		Lines:          lines,
	}
}
