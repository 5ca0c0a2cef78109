package models

// RuleStatus is the four-way outcome of a single checklist rule
type RuleStatus string

const (
	RulePass RuleStatus = "pass"
	RuleWarn RuleStatus = "warn"
	RuleFail RuleStatus = "fail"
	RuleNA   RuleStatus = "na"
)

// RuleEvaluation is one rule applied to one ticker's figures
type RuleEvaluation struct {
	Name      string     `json:"name"`
	Condition string     `json:"condition"`
	Value     string     `json:"value"`
	Status    RuleStatus `json:"status"`
	Comment   string     `json:"comment,omitempty"`
	Weight    int        `json:"weight"`
}

// ChecklistSummary counts rule outcomes and carries the headline
type ChecklistSummary struct {
	Passes   int    `json:"passes"`
	Warns    int    `json:"warns"`
	Fails    int    `json:"fails"`
	NA       int    `json:"na"`
	Headline string `json:"headline"`
}

// ChecklistResult is the full evaluation of one profile against one ticker
type ChecklistResult struct {
	Ticker  string           `json:"ticker"`
	Profile string           `json:"profile"`
	Rules   []RuleEvaluation `json:"rules"`
	Summary ChecklistSummary `json:"summary"`
}

// ScoreResult is the scoring variant: weighted points capped at 100
type ScoreResult struct {
	Ticker  string   `json:"ticker"`
	Profile string   `json:"profile"`
	Score   int      `json:"score"`
	Verdict string   `json:"verdict"`
	Notes   []string `json:"notes"`
}

// ProfileInfo describes one investor profile for listings
type ProfileInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
