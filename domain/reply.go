package domain

// ReplyKind tags the outcome of a quest transition. The gateway decides how
// each kind renders in the chat.
type ReplyKind string

const (
	ReplyGreeting         ReplyKind = "greeting"
	ReplyTaskIntro        ReplyKind = "task_intro"
	ReplyAlreadyDone      ReplyKind = "already_done"
	ReplyNeedsActivation  ReplyKind = "needs_activation"
	ReplyCredited         ReplyKind = "credited"
	ReplyReverted         ReplyKind = "reverted"
	ReplyCleared          ReplyKind = "cleared"
	ReplyOnboardingPrompt ReplyKind = "onboarding_prompt"
	ReplyProgressView     ReplyKind = "progress_view"
)

// Reply is the structured response returned by every quest transition.
type Reply struct {
	Kind     ReplyKind       `json:"kind"`
	Task     *TaskDefinition `json:"task,omitempty"`
	Progress *ProgressView   `json:"progress,omitempty"`
}

// ChecklistLine is a single catalog task with its completion mark.
type ChecklistLine struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ProgressView summarizes a user's progress against the catalog.
// FilledSegments is out of 10 and reaches 10 only at exactly 100 percent.
type ProgressView struct {
	Percent        int             `json:"percent"`
	FilledSegments int             `json:"filled_segments"`
	Completed      int             `json:"completed"`
	Total          int             `json:"total"`
	Lines          []ChecklistLine `json:"lines"`
}
