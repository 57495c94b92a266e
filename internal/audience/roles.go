package audience

import "strings"

// RoleFamily is the classified domain role behind a raw backend role string.
type RoleFamily string

const (
	FamilyAdmin        RoleFamily = "admin"
	FamilyPromoter     RoleFamily = "promoter"
	FamilyTeamLeader   RoleFamily = "team_leader"
	FamilyMerchandiser RoleFamily = "merchandiser"
	FamilyUnknown      RoleFamily = "unknown"
)

// Locale selects the display language for role labels.
type Locale string

const (
	LocaleEn Locale = "en"
	LocaleAr Locale = "ar"
)

// roleSynonyms maps each family to the raw-role substrings that identify it.
// Matching is case-insensitive and substring-tolerant: a raw role matches a
// family when it contains any of the family's synonyms. Admin is checked
// first so that compound admin roles never classify as field roles.
var roleSynonyms = []struct {
	family   RoleFamily
	patterns []string
}{
	{FamilyAdmin, []string{"super_admin", "super admin", "admin"}},
	{FamilyPromoter, []string{"promoter", "promoplus"}},
	{FamilyTeamLeader, []string{"team_leader", "team leader", "teamleader"}},
	{FamilyMerchandiser, []string{"merchandiser", "mch"}},
}

var familyLabels = map[RoleFamily]map[Locale]string{
	FamilyAdmin:        {LocaleEn: "Admin", LocaleAr: "مسؤول"},
	FamilyPromoter:     {LocaleEn: "Promoter", LocaleAr: "مروج"},
	FamilyTeamLeader:   {LocaleEn: "Team Leader", LocaleAr: "قائد فريق"},
	FamilyMerchandiser: {LocaleEn: "Merchandiser", LocaleAr: "منسق"},
}

// Classify maps a raw backend role string to its role family.
// Unrecognized and empty roles classify as FamilyUnknown; upstream systems
// add roles without coordinating with this portal, so unknown is a normal
// outcome, not an error.
func Classify(raw string) RoleFamily {
	normalized := NormalizeID(raw)
	if normalized == "" {
		return FamilyUnknown
	}
	for _, entry := range roleSynonyms {
		for _, p := range entry.patterns {
			if strings.Contains(normalized, p) {
				return entry.family
			}
		}
	}
	return FamilyUnknown
}

// Label returns the localized display label for a raw role string.
// Empty roles render as the "-" placeholder and unknown roles pass through
// unchanged so newly added upstream roles stay readable. Admin roles are
// labeled here; whether an Admin row is shown at all is the caller's
// policy (see Resolve and Composable).
func Label(raw string, locale Locale) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	family := Classify(raw)
	if labels, ok := familyLabels[family]; ok {
		return labels[locale]
	}
	return raw
}

// MatchesRole reports whether a roster member's raw role satisfies a
// requested role, with the same semantics targeting resolution uses.
func MatchesRole(memberRole, requestedRole string) bool {
	return matchesRequestedRole(memberRole, requestedRole)
}

// matchesRequestedRole reports whether a roster member's raw role satisfies
// a requested targeting role. Documented synonym families match as
// families; a requested role outside every family falls back to exact
// case-insensitive equality against the raw string.
func matchesRequestedRole(memberRole, requestedRole string) bool {
	requestedFamily := Classify(requestedRole)
	if requestedFamily != FamilyUnknown {
		return Classify(memberRole) == requestedFamily
	}
	return NormalizeID(memberRole) == NormalizeID(requestedRole)
}
