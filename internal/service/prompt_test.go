package service

import (
	"testing"

	"rental_coach_backend/internal/repository"
	"rental_coach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPersonaPrompt(t *testing.T) {
	l := repository.DefaultListings()[2]
	prompt, err := BuildPersonaPrompt(&l)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Listing #3")
	assert.Contains(t, prompt, "- Price: 800")
	assert.Contains(t, prompt, "- Personality: Evasive and vague")
	assert.Contains(t, prompt, "Budget-Friendly 1-Bedroom Near University")
}

func TestBuildPersonaPromptNilListing(t *testing.T) {
	_, err := BuildPersonaPrompt(nil)
	assert.ErrorIs(t, err, util.ErrListingNotFound)
}
