package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidate_Name(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Candidate{FirstName: "Ada", LastName: "Lovelace"}.Name())
	assert.Equal(t, "Ada", Candidate{FirstName: " Ada "}.Name())
	assert.Equal(t, "Lovelace", Candidate{LastName: "Lovelace"}.Name())
	assert.Empty(t, Candidate{}.Name())
}

func TestCandidate_HasStatus(t *testing.T) {
	assert.False(t, Candidate{}.HasStatus())
	assert.True(t, Candidate{Status: "L1 Scheduled"}.HasStatus())
}
