package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchEmptyRequiredScoresZero(t *testing.T) {
	result := Match([]string{"react", "go"}, nil)
	require.Equal(t, 0, result.Percentage)
	require.Empty(t, result.MatchedSkills)
}

func TestMatchCaseInsensitivePreservesRequiredCasing(t *testing.T) {
	result := Match([]string{"React"}, []string{"react"})
	require.Equal(t, 100, result.Percentage)
	require.Equal(t, []string{"react"}, result.MatchedSkills)

	result = Match([]string{"react", "python"}, []string{"React", "Node"})
	require.Equal(t, 50, result.Percentage)
	require.Equal(t, []string{"React"}, result.MatchedSkills)
}

func TestMatchFullCoverage(t *testing.T) {
	result := Match([]string{"GO", "docker", "Kubernetes", "extra"}, []string{"Go", "Docker", "kubernetes"})
	require.Equal(t, 100, result.Percentage)
	require.Equal(t, []string{"Go", "Docker", "kubernetes"}, result.MatchedSkills)
}

func TestMatchRoundsHalfUp(t *testing.T) {
	cases := []struct {
		candidate []string
		required  []string
		want      int
	}{
		{[]string{"a"}, []string{"a", "b", "c"}, 33},
		{[]string{"a", "b"}, []string{"a", "b", "c"}, 67},
		{[]string{"a"}, []string{"a", "b"}, 50},
		{[]string{"a"}, []string{"a", "b", "c", "d", "e", "f"}, 17},
		{nil, []string{"a"}, 0},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Match(tc.candidate, tc.required).Percentage)
	}
}

func TestMatchMonotonicInOverlap(t *testing.T) {
	required := []string{"go", "react", "sql", "docker"}

	previous := -1
	candidate := []string{}
	for _, skill := range required {
		candidate = append(candidate, skill)
		score := Match(candidate, required).Percentage
		require.Greater(t, score, previous)
		previous = score
	}
	require.Equal(t, 100, previous)
}

func TestMatchPreservesRequiredOrder(t *testing.T) {
	result := Match([]string{"sql", "go", "react"}, []string{"React", "SQL", "Go"})
	require.Equal(t, []string{"React", "SQL", "Go"}, result.MatchedSkills)
}

func TestRankByGoalOrdersByOverlapStable(t *testing.T) {
	roster := []UserSkills{
		{UserID: "u1", Skills: []string{"python"}},
		{UserID: "u2", Skills: []string{"react", "node"}},
		{UserID: "u3", Skills: []string{"react"}},
		{UserID: "u4", Skills: []string{"cooking"}},
	}

	ranked := RankByGoal("Build a React and Node web app", roster, 0)
	require.Len(t, ranked, 4)
	require.Equal(t, "u2", ranked[0].UserID)
	require.Equal(t, "u3", ranked[1].UserID)
	// u1 and u4 both score zero and keep roster order
	require.Equal(t, "u1", ranked[2].UserID)
	require.Equal(t, "u4", ranked[3].UserID)
}

func TestRankByGoalHonoursLimit(t *testing.T) {
	roster := []UserSkills{
		{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"},
	}

	ranked := RankByGoal("anything at all", roster, 2)
	require.Len(t, ranked, 2)
}
