package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/ai"
	"github.com/teambuilder-dev/teambuilder/internal/matching"
	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/pkg/logger"
	"github.com/teambuilder-dev/teambuilder/pkg/metrics"
)

//go:embed prompt.md
var conciergePrompt string

const (
	minGoalLength           = 5
	defaultConciergeTimeout = 15 * time.Second
	defaultRosterLimit      = 12
	fallbackTeamSize        = 3
)

var (
	fallbackRoles            = []string{"Frontend Developer", "Backend Developer", "ML Engineer"}
	fallbackResponsibilities = []string{"UI and user experience", "APIs and database", "AI/ML components"}
	fallbackNextSteps        = []string{
		"Send invite messages to matched students",
		"Schedule a 30-min kickoff call",
		"Set up a shared GitHub repo and assign tasks",
	}
	emptyRosterNextSteps = []string{
		"Share the platform link so students can register",
		"Ask potential teammates to sign up and add their skills",
		"Try again once students have created their profiles",
	}
)

// ConciergeOption customises ConciergeService behaviour.
type ConciergeOption func(*ConciergeService)

// WithConciergeTimeout bounds the text-generation boundary call.
func WithConciergeTimeout(d time.Duration) ConciergeOption {
	return func(s *ConciergeService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRosterLimit bounds how many ranked candidates are offered to the generator.
func WithRosterLimit(limit int) ConciergeOption {
	return func(s *ConciergeService) {
		if limit > 0 {
			s.rosterLimit = limit
		}
	}
}

// ConciergeService turns a stated goal into a suggested team: it ranks the
// student roster heuristically, asks the text-generation boundary to narrate
// and draft intro messages, and falls back to a deterministic local plan when
// the boundary is absent or unavailable. The generated plan is only ever a
// draft; nothing is sent without the requester's approval.
type ConciergeService struct {
	db          *gorm.DB
	generator   ai.TextGenerator
	timeout     time.Duration
	rosterLimit int
	log         *zap.Logger
}

// NewConciergeService constructs a concierge. The generator may be nil, in
// which case every request is served by the local fallback.
func NewConciergeService(db *gorm.DB, generator ai.TextGenerator, opts ...ConciergeOption) (*ConciergeService, error) {
	if db == nil {
		return nil, errors.New("concierge service: db is required")
	}

	service := &ConciergeService{
		db:          db,
		generator:   generator,
		timeout:     defaultConciergeTimeout,
		rosterLimit: defaultRosterLimit,
		log:         logger.WithModule("concierge"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TeamMatch is one suggested teammate in a plan.
type TeamMatch struct {
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	Role         string `json:"role"`
	MatchReason  string `json:"matchReason"`
	IntroMessage string `json:"introMessage"`
	MatchScore   int    `json:"matchScore"`
}

// RoleAssignment names who owns which role in the suggested team.
type RoleAssignment struct {
	Role           string `json:"role"`
	Person         string `json:"person"`
	Responsibility string `json:"responsibility"`
}

// TeamPlan is the concierge output: a narrated, human-approvable team draft.
type TeamPlan struct {
	Summary       string           `json:"summary"`
	Reasoning     string           `json:"reasoning"`
	Matches       []TeamMatch      `json:"matches"`
	RoleBreakdown []RoleAssignment `json:"roleBreakdown"`
	NextSteps     []string         `json:"nextSteps"`
}

type conciergeCandidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
}

// BuildTeam produces a team plan for the goal. The requester is never part of
// the candidate roster.
func (s *ConciergeService) BuildTeam(ctx context.Context, requesterID, goal string) (*TeamPlan, error) {
	ctx = ensuredContext(ctx)

	goal = strings.TrimSpace(goal)
	if len(goal) < minGoalLength {
		return nil, ErrGoalTooShort
	}

	roster, err := s.loadRoster(ctx, requesterID, goal)
	if err != nil {
		metrics.ConciergeRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(roster) == 0 {
		metrics.ConciergeRuns.WithLabelValues("fallback").Inc()
		return emptyRosterPlan(goal), nil
	}

	if s.generator == nil {
		metrics.ConciergeRuns.WithLabelValues("fallback").Inc()
		return fallbackPlan(goal, roster), nil
	}

	plan, err := s.generatePlan(ctx, goal, roster)
	switch {
	case err == nil:
		metrics.ConciergeRuns.WithLabelValues("ai").Inc()
		return plan, nil
	case errors.Is(err, ErrPlanFormat):
		// The boundary answered but with unusable content; surface it so the
		// caller can retry rather than silently degrade.
		metrics.ConciergeRuns.WithLabelValues("error").Inc()
		return nil, err
	default:
		// Unavailable or timed out: recover locally, never block on the boundary.
		s.log.Warn("generator unavailable, using local fallback", zap.Error(err))
		metrics.ConciergeRuns.WithLabelValues("fallback").Inc()
		return fallbackPlan(goal, roster), nil
	}
}

// loadRoster returns the goal-ranked, bounded candidate list.
func (s *ConciergeService) loadRoster(ctx context.Context, requesterID, goal string) ([]conciergeCandidate, error) {
	var students []models.User
	query := s.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		Order("created_at")
	if requesterID != "" {
		query = query.Where("id <> ?", requesterID)
	}
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*models.User, len(students))
	skillsByUser := make([]matching.UserSkills, 0, len(students))
	for i := range students {
		student := &students[i]
		byID[student.ID] = student
		skillsByUser = append(skillsByUser, matching.UserSkills{UserID: student.ID, Skills: student.Skills})
	}

	ranked := matching.RankByGoal(goal, skillsByUser, s.rosterLimit)

	roster := make([]conciergeCandidate, 0, len(ranked))
	for _, candidate := range ranked {
		student := byID[candidate.UserID]
		availability := student.Availability
		if availability == "" {
			availability = "Not specified"
		}
		roster = append(roster, conciergeCandidate{
			ID:           student.ID,
			Name:         student.Name,
			Skills:       student.Skills,
			Availability: availability,
		})
	}
	return roster, nil
}

func (s *ConciergeService) generatePlan(ctx context.Context, goal string, roster []conciergeCandidate) (*TeamPlan, error) {
	prompt, err := buildConciergePrompt(goal, roster)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := parseTeamPlan(raw, roster)
	if err != nil {
		s.log.Warn("rejected generator output", zap.Error(err))
		return nil, err
	}
	return plan, nil
}

func buildConciergePrompt(goal string, roster []conciergeCandidate) (string, error) {
	rosterJSON, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return "", fmt.Errorf("concierge service: marshal roster: %w", err)
	}

	prompt := strings.ReplaceAll(conciergePrompt, "{{GOAL}}", goal)
	prompt = strings.ReplaceAll(prompt, "{{STUDENTS_JSON}}", string(rosterJSON))
	return prompt, nil
}

// parseTeamPlan validates the boundary's output against the fixed schema and
// the supplied roster. Anything structurally off, or any studentId outside
// the roster, is ErrPlanFormat.
func parseTeamPlan(raw string, roster []conciergeCandidate) (*TeamPlan, error) {
	cleaned := stripCodeFences(raw)

	var plan TeamPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanFormat, err)
	}

	known := make(map[string]struct{}, len(roster))
	for _, candidate := range roster {
		known[candidate.ID] = struct{}{}
	}

	for i := range plan.Matches {
		match := &plan.Matches[i]
		if _, ok := known[match.StudentID]; !ok {
			return nil, fmt.Errorf("%w: unknown student id %q", ErrPlanFormat, match.StudentID)
		}
		if match.MatchScore < 0 {
			match.MatchScore = 0
		}
		if match.MatchScore > 100 {
			match.MatchScore = 100
		}
	}

	if plan.Matches == nil {
		plan.Matches = []TeamMatch{}
	}
	if plan.RoleBreakdown == nil {
		plan.RoleBreakdown = []RoleAssignment{}
	}
	if plan.NextSteps == nil {
		plan.NextSteps = []string{}
	}

	return &plan, nil
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

// fallbackPlan builds a deterministic plan from the ranked roster: the top
// three candidates, round-robin roles, templated intro messages.
func fallbackPlan(goal string, roster []conciergeCandidate) *TeamPlan {
	size := len(roster)
	if size > fallbackTeamSize {
		size = fallbackTeamSize
	}

	matches := make([]TeamMatch, 0, size)
	breakdown := make([]RoleAssignment, 0, size)
	for i := 0; i < size; i++ {
		candidate := roster[i]
		role := "Developer"
		responsibility := "General development"
		if i < len(fallbackRoles) {
			role = fallbackRoles[i]
			responsibility = fallbackResponsibilities[i]
		}

		matches = append(matches, TeamMatch{
			StudentID:    candidate.ID,
			StudentName:  candidate.Name,
			Role:         role,
			MatchReason:  fmt.Sprintf("%s has skills in %s that align with this goal.", candidate.Name, skillsPhrase(candidate.Skills, 0)),
			IntroMessage: fmt.Sprintf("Hi %s! I'm assembling a team for: %s. Your skills in %s would be a great fit. Interested?", candidate.Name, goal, skillsPhrase(candidate.Skills, 2)),
			MatchScore:   90 - i*10,
		})
		breakdown = append(breakdown, RoleAssignment{
			Role:           role,
			Person:         candidate.Name,
			Responsibility: responsibility,
		})
	}

	return &TeamPlan{
		Summary:       fmt.Sprintf("Building a team for: %s", goal),
		Reasoning:     "Matched students based on their listed skills to best fit the goal requirements.",
		Matches:       matches,
		RoleBreakdown: breakdown,
		NextSteps:     append([]string(nil), fallbackNextSteps...),
	}
}

func emptyRosterPlan(goal string) *TeamPlan {
	return &TeamPlan{
		Summary:       goal,
		Reasoning:     "No students are currently registered on the platform. Once students sign up and add their skills, the AI will be able to match them to your goal.",
		Matches:       []TeamMatch{},
		RoleBreakdown: []RoleAssignment{},
		NextSteps:     append([]string(nil), emptyRosterNextSteps...),
	}
}

func skillsPhrase(skills []string, limit int) string {
	if limit > 0 && len(skills) > limit {
		skills = skills[:limit]
	}
	switch len(skills) {
	case 0:
		return "general development"
	case 1:
		return skills[0]
	default:
		return strings.Join(skills[:len(skills)-1], ", ") + " and " + skills[len(skills)-1]
	}
}
