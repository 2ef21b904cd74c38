package view

import (
	"fmt"
	"goalTracker/internal/models/goal"
	"strconv"
	"strings"
)

const (
	NoticeAdded     = "Goal added successfully!"
	NoticeCompleted = "Goal completed! Great job!"
	NoticeUpdated   = "Goal updated successfully!"

	QuestionDeleteGoal      = "Are you sure you want to delete this goal?"
	QuestionRemoveCompleted = "Are you sure you want to remove this completed goal?"
)

// Notice codes travel in redirect URLs; the banner text is looked up from
// them so a link can't put arbitrary text into the page.
const (
	CodeAdded     = "added"
	CodeCompleted = "completed"
	CodeUpdated   = "updated"

	progressCodePrefix = "progress-"
)

func ProgressNotice(progress int) string {
	if progress >= goal.ProgressMax {
		return "Goal progress updated to 100%!"
	}
	return fmt.Sprintf("Progress updated to %d%%", progress)
}

func ProgressCode(progress int) string {
	return progressCodePrefix + strconv.Itoa(progress)
}

// NoticeText returns the banner for a notice code, or "" for anything
// unknown.
func NoticeText(code string) string {
	switch code {
	case CodeAdded:
		return NoticeAdded
	case CodeCompleted:
		return NoticeCompleted
	case CodeUpdated:
		return NoticeUpdated
	}

	raw, ok := strings.CutPrefix(code, progressCodePrefix)
	if !ok {
		return ""
	}
	progress, err := strconv.Atoi(raw)
	if err != nil || progress <= 0 || progress > goal.ProgressMax || progress%goal.ProgressStep != 0 {
		return ""
	}
	return ProgressNotice(progress)
}
