package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/project-review/internal/scoring"
)

func TestProject_ApplyScore(t *testing.T) {
	p := Project{Status: ProjectStatusDraft}
	res := scoring.Score("A clear and well documented technical architecture with detailed diagrams")

	p.ApplyScore(res)

	assert.Equal(t, ProjectStatusScored, p.Status)
	assert.Equal(t, res, p.Score())
}

func TestProject_BeforeCreateKeepsID(t *testing.T) {
	id := uuid.New()
	p := Project{ID: id}
	require.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, id, p.ID)

	var fresh Project
	require.NoError(t, fresh.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, fresh.ID)
}

func TestUser_Password(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse"))
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("correct horse"))
	assert.Error(t, u.CheckPassword("wrong"))
}
