// Package checklist evaluates investor-style rule sets against a ticker's
// fundamentals and ratios. Profiles are static and registered at init;
// every rule classifies into pass/warn/fail, or na when its input is
// unresolved. The engine never errors over missing data, only over an
// unknown profile key.
package checklist

import (
	"fmt"

	"github.com/bobmcallan/sift/internal/models"
)

type ruleFunc func(f *models.CanonicalFundamentals, r *models.RatioSet) []models.RuleEvaluation

// Profile couples the display metadata with its rule function
type Profile struct {
	Info  models.ProfileInfo
	rules ruleFunc
}

// registry holds the profiles in display order
var registry = []Profile{
	{
		Info: models.ProfileInfo{
			Key:         "graham",
			Name:        "Benjamin Graham",
			Label:       "Graham – Deep Value",
			Category:    "Deep Value",
			Description: "Low multiples, strong balance sheet, and classic Ben Graham safeguards.",
		},
		rules: grahamRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "buffett",
			Name:        "Warren Buffett",
			Label:       "Buffett – Quality at Fair Price",
			Category:    "Quality",
			Description: "High-quality, high-ROE businesses with conservative leverage at sensible valuations.",
		},
		rules: buffettRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "lynch",
			Name:        "Peter Lynch",
			Label:       "Lynch – GARP (PEG)",
			Category:    "GARP",
			Description: "Growth at a reasonable price; PEG around 1 with decent balance sheet.",
		},
		rules: lynchRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "greenblatt",
			Name:        "Joel Greenblatt",
			Label:       "Greenblatt – Magic Formula",
			Category:    "Deep Value / Quality",
			Description: "High earnings yield and high return on capital, Magic Formula style.",
		},
		rules: greenblattRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "burry",
			Name:        "Michael Burry",
			Label:       "Burry – Deep FCF Value",
			Category:    "Deep Value",
			Description: "Cheap on free cash flow with an acceptable balance sheet.",
		},
		rules: burryRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "klarman",
			Name:        "Seth Klarman",
			Label:       "Klarman – Asset / Margin of Safety",
			Category:    "Deep Value",
			Description: "Asset-based margin of safety; book value and net current assets versus price.",
		},
		rules: klarmanRules,
	},
	{
		Info: models.ProfileInfo{
			Key:         "einhorn",
			Name:        "David Einhorn",
			Label:       "Einhorn – Relative Value",
			Category:    "Relative Value",
			Description: "Relative value via EV multiples; absolute screen pending peer context.",
		},
		rules: einhornRules,
	},
}

// ListProfiles returns the profile descriptions in display order
func ListProfiles() []models.ProfileInfo {
	infos := make([]models.ProfileInfo, len(registry))
	for i, p := range registry {
		infos[i] = p.Info
	}
	return infos
}

func lookup(key string) (*Profile, error) {
	for i := range registry {
		if registry[i].Info.Key == key {
			return &registry[i], nil
		}
	}
	return nil, fmt.Errorf("unknown profile key: %s", key)
}

// Evaluate runs one profile's rules and summarizes the outcomes
func Evaluate(key string, f *models.CanonicalFundamentals, r *models.RatioSet) (*models.ChecklistResult, error) {
	profile, err := lookup(key)
	if err != nil {
		return nil, err
	}

	rules := profile.rules(f, r)

	result := &models.ChecklistResult{
		Ticker:  f.Ticker,
		Profile: key,
		Rules:   rules,
	}

	for _, rule := range rules {
		switch rule.Status {
		case models.RulePass:
			result.Summary.Passes++
		case models.RuleWarn:
			result.Summary.Warns++
		case models.RuleFail:
			result.Summary.Fails++
		case models.RuleNA:
			result.Summary.NA++
		}
	}

	label := shortLabel(profile.Info.Name)
	switch {
	case result.Summary.Fails == 0 && result.Summary.Passes >= 4:
		result.Summary.Headline = fmt.Sprintf("Very %s-friendly profile.", label)
	case result.Summary.Passes >= result.Summary.Fails:
		result.Summary.Headline = fmt.Sprintf("Mixed but somewhat %s-compatible.", label)
	default:
		result.Summary.Headline = fmt.Sprintf("Not a classic %s-style candidate.", label)
	}

	return result, nil
}

// Score is the weighted variant: passes earn a rule's full weight, warns
// half, capped at 100 total.
func Score(key string, f *models.CanonicalFundamentals, r *models.RatioSet) (*models.ScoreResult, error) {
	result, err := Evaluate(key, f, r)
	if err != nil {
		return nil, err
	}

	score := 0
	notes := make([]string, 0, len(result.Rules))
	for _, rule := range result.Rules {
		switch rule.Status {
		case models.RulePass:
			score += rule.Weight
		case models.RuleWarn:
			score += rule.Weight / 2
		}
		if rule.Comment != "" {
			notes = append(notes, fmt.Sprintf("%s (%s): %s", rule.Name, rule.Value, rule.Comment))
		}
	}
	if score > 100 {
		score = 100
	}

	verdict := "Weak fit."
	switch {
	case score >= 70:
		verdict = "Strong fit."
	case score >= 50:
		verdict = "Partial fit."
	}

	return &models.ScoreResult{
		Ticker:  result.Ticker,
		Profile: key,
		Score:   score,
		Verdict: verdict,
		Notes:   notes,
	}, nil
}

// shortLabel reduces "Benjamin Graham" to "Graham" for headlines
func shortLabel(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[i+1:]
		}
	}
	return name
}
