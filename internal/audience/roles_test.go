package audience_test

import (
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		raw  string
		want audience.RoleFamily
	}{
		{"promoter", audience.FamilyPromoter},
		{"PromoPlus", audience.FamilyPromoter},
		{"team_leader", audience.FamilyTeamLeader},
		{"Team Leader", audience.FamilyTeamLeader},
		{"TEAMLEADER", audience.FamilyTeamLeader},
		{"merchandiser", audience.FamilyMerchandiser},
		{"mch", audience.FamilyMerchandiser},
		{"admin", audience.FamilyAdmin},
		{"super_admin", audience.FamilyAdmin},
		{"Super Admin", audience.FamilyAdmin},
		{"", audience.FamilyUnknown},
		{"auditor", audience.FamilyUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, audience.Classify(tc.raw))
		})
	}
}

func TestLabel(t *testing.T) {
	t.Run("bilingual family labels", func(t *testing.T) {
		assert.Equal(t, "Promoter", audience.Label("promoter", audience.LocaleEn))
		assert.Equal(t, "مروج", audience.Label("promoter", audience.LocaleAr))
		assert.Equal(t, "Team Leader", audience.Label("team_leader", audience.LocaleEn))
		assert.Equal(t, "قائد فريق", audience.Label("team_leader", audience.LocaleAr))
		assert.Equal(t, "Merchandiser", audience.Label("mch", audience.LocaleEn))
		assert.Equal(t, "منسق", audience.Label("mch", audience.LocaleAr))
	})

	t.Run("admin is labeled in display contexts", func(t *testing.T) {
		assert.Equal(t, "Admin", audience.Label("super_admin", audience.LocaleEn))
	})

	t.Run("empty role renders placeholder", func(t *testing.T) {
		assert.Equal(t, "-", audience.Label("", audience.LocaleEn))
		assert.Equal(t, "-", audience.Label("   ", audience.LocaleAr))
	})

	t.Run("unknown role passes through unchanged", func(t *testing.T) {
		assert.Equal(t, "Auditor", audience.Label("Auditor", audience.LocaleEn))
	})
}
