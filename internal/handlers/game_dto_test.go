package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govel.dev/sweeper/internal/mines"
)

func TestParseCreateGameDTO(t *testing.T) {
	query, err := url.ParseQuery("width=9&height=9&mine_count=10&extra=1")
	require.NoError(t, err)

	dto, err := ParseCreateGameDTO(query)
	require.NoError(t, err)
	assert.Equal(t, CreateGameDTO{Width: 9, Height: 9, MineCount: 10}, dto)
	assert.Equal(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10}, dto.GameParams())
}

func TestParseCreateGameDTOMissingField(t *testing.T) {
	query, err := url.ParseQuery("width=9&height=9")
	require.NoError(t, err)

	_, err = ParseCreateGameDTO(query)
	assert.Error(t, err)
}

func TestRecordsQueryDTOOptions(t *testing.T) {
	query, err := url.ParseQuery("username=ada&won=true")
	require.NoError(t, err)

	dto, err := ParseRecordsQueryDTO(query)
	require.NoError(t, err)
	require.NotNil(t, dto.Username)
	assert.Equal(t, "ada", *dto.Username)
	assert.True(t, dto.Won)
	assert.Len(t, dto.Options(), 2)
}

func TestRecordsQueryDTOPartialParamsIgnored(t *testing.T) {
	// params only count as a filter when all three are present
	query, err := url.ParseQuery("width=9&height=9")
	require.NoError(t, err)

	dto, err := ParseRecordsQueryDTO(query)
	require.NoError(t, err)
	assert.Empty(t, dto.Options())
}
