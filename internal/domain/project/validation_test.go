package project_test

import (
	"testing"

	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func validProject() project.Project {
	return project.Project{
		ID:          "p1",
		Name:        "Name",
		Description: "Description",
		Type:        project.TypePersonal,
		Usefulness:  4,
		Status:      project.StatusIdea,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, project.Validate(validProject()))

	missing := validProject()
	missing.Name = "   "
	missing.Status = ""
	err := project.Validate(missing)
	require.ErrorIs(t, err, project.ErrInvalidInput)
	require.Contains(t, err.Error(), "name, status")

	badType := validProject()
	badType.Type = "business"
	require.ErrorIs(t, project.Validate(badType), project.ErrInvalidInput)

	badStage := validProject()
	badStage.Stage = "Scale"
	require.ErrorIs(t, project.Validate(badStage), project.ErrInvalidInput)
}

func TestClampUsefulness(t *testing.T) {
	require.Equal(t, 1, project.ClampUsefulness(1))
	require.Equal(t, 5, project.ClampUsefulness(5))
	require.Equal(t, 3, project.ClampUsefulness(9))
	require.Equal(t, 3, project.ClampUsefulness(0))
}

func TestClampProgress(t *testing.T) {
	require.Equal(t, 0, project.ClampProgress(-4))
	require.Equal(t, 42, project.ClampProgress(42))
	require.Equal(t, 100, project.ClampProgress(180))
}

func TestNormalize(t *testing.T) {
	p := validProject()
	p.Name = "  Padded  "
	p.Usefulness = 7
	p.Progress = project.IntPtr(150)
	p.Tags = []string{"a", " b", "a", "", "B"}

	out := project.Normalize(p)
	require.Equal(t, "Padded", out.Name)
	require.Equal(t, 3, out.Usefulness)
	require.Equal(t, 100, *out.Progress)
	require.Equal(t, []string{"a", "b", "B"}, out.Tags)

	// the input is left untouched
	require.Equal(t, 150, *p.Progress)
	require.Len(t, p.Tags, 5)
}

func TestClone(t *testing.T) {
	p := validProject()
	p.Progress = project.IntPtr(10)
	p.Tags = []string{"x"}

	c := p.Clone()
	*c.Progress = 90
	c.Tags[0] = "y"

	require.Equal(t, 10, *p.Progress)
	require.Equal(t, "x", p.Tags[0])
}

func TestSeedSatisfiesInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range project.Seed() {
		require.NoError(t, project.Validate(p))
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	require.Len(t, seen, 5)
}

func TestParseEnums(t *testing.T) {
	typ, err := project.ParseType(" sell ")
	require.NoError(t, err)
	require.Equal(t, project.TypeSell, typ)
	_, err = project.ParseType("business")
	require.ErrorIs(t, err, project.ErrInvalidInput)

	status, err := project.ParseStatus("in_progress")
	require.NoError(t, err)
	require.Equal(t, project.StatusInProgress, status)
	_, err = project.ParseStatus("paused")
	require.ErrorIs(t, err, project.ErrInvalidInput)

	stage, err := project.ParseStage("")
	require.NoError(t, err)
	require.Equal(t, project.Stage(""), stage)
	_, err = project.ParseStage("build")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}
