package repository_test

import (
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder("asc"))
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder("ASC"))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder("desc"))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder(""))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder("sideways"))
}

func TestBuildOrderClause(t *testing.T) {
	fieldMap := map[string]string{
		"requestedAt": "requested_at",
		"waitSeconds": "wait_seconds",
	}

	t.Run("whitelisted field maps to its column", func(t *testing.T) {
		clause := repository.BuildOrderClause(
			repository.SortConfig{Field: "waitSeconds", Order: repository.SortOrderAsc},
			fieldMap, "requested_at")
		assert.Equal(t, "wait_seconds ASC", clause)
	})

	t.Run("unknown field falls back to the default column", func(t *testing.T) {
		clause := repository.BuildOrderClause(
			repository.SortConfig{Field: "requested_at; DROP TABLE users", Order: repository.SortOrderDesc},
			fieldMap, "requested_at")
		assert.Equal(t, "requested_at DESC", clause)
	})

	t.Run("default config orders the default column newest first", func(t *testing.T) {
		clause := repository.BuildOrderClause(repository.DefaultSortConfig(), fieldMap, "requested_at")
		assert.Equal(t, "requested_at DESC", clause)
	})
}
