// Package matching implements the deterministic skill-match scoring used to
// annotate project listings and applicant reviews, plus the heuristic goal
// ranking that feeds the concierge.
package matching

import (
	"sort"
	"strings"
)

// Result describes how well a candidate's skills cover a required-skill list.
type Result struct {
	// MatchedSkills preserves the order and casing of the required list,
	// filtered to the skills the candidate has.
	MatchedSkills []string `json:"matched_skills"`
	// Percentage is the round-half-up share of required skills covered,
	// 0..100. An empty required list scores 0, not 100.
	Percentage int `json:"match_percentage"`
}

// Match compares a candidate's skills against a project's required skills.
// Comparison is case-insensitive; the stored casing of the required list is
// preserved in the output. It is a pure function and never fails.
func Match(candidateSkills, requiredSkills []string) Result {
	matched := make([]string, 0, len(requiredSkills))
	if len(requiredSkills) == 0 {
		return Result{MatchedSkills: matched, Percentage: 0}
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		have[key] = struct{}{}
	}

	for _, required := range requiredSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(required))]; ok {
			matched = append(matched, required)
		}
	}

	// Integer round-half-up of 100*|matched|/|required|.
	total := len(requiredSkills)
	percentage := (200*len(matched) + total) / (2 * total)

	return Result{MatchedSkills: matched, Percentage: percentage}
}

// Candidate is one entry of a goal ranking.
type Candidate struct {
	UserID string
	Score  int
}

// RankByGoal orders candidate user ids by how much their skills overlap the
// free-text goal. The ranking is stable: ties keep the supplied order, so the
// output is deterministic for a given roster. Limit bounds the result when
// positive.
func RankByGoal(goal string, skillsByUser []UserSkills, limit int) []Candidate {
	terms := tokenize(goal)

	ranked := make([]Candidate, 0, len(skillsByUser))
	for _, entry := range skillsByUser {
		score := 0
		if len(terms) > 0 {
			score = Match(entry.Skills, terms).Percentage
		}
		ranked = append(ranked, Candidate{UserID: entry.UserID, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// UserSkills pairs a user id with its skill list for ranking.
type UserSkills struct {
	UserID string
	Skills []string
}

func tokenize(goal string) []string {
	fields := strings.FieldsFunc(strings.ToLower(goal), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#' || r == '.':
			// keep c++, c#, node.js and friends intact
			return false
		}
		return true
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, field)
	}
	return terms
}
