package audience

// Member is the projection of one roster user that resolution needs.
type Member struct {
	ID     string
	Role   string
	Active bool
}

// TargetSpec holds a notification's targeting fields as stored on the row.
// A row can carry more than one populated field (historical data does);
// Resolve applies a fixed precedence so the outcome stays deterministic.
type TargetSpec struct {
	// UserID is a single explicit target.
	UserID string
	// UserIDs is an explicit target list.
	UserIDs []string
	// Roles is a list of requested targeting roles.
	Roles []string
	// ForAll targets every active roster user of the tenant.
	ForAll bool
}

type options struct {
	excludeAdmins bool
}

// Option adjusts resolution policy.
type Option func(*options)

// ExcludeAdmins removes admin-family members from role-based and all-users
// expansion. Explicit user lists are never filtered: a historical broadcast
// that named an admin keeps that admin in its audience.
func ExcludeAdmins() Option {
	return func(o *options) { o.excludeAdmins = true }
}

// Resolve expands a TargetSpec against a roster snapshot into the set of
// normalized recipient identifiers.
//
// Precedence, first populated field wins:
//  1. explicit user id / user-id list — taken verbatim, no roster lookup;
//     ids absent from the roster still count (deactivated users must not
//     drop out of delivery tracking),
//  2. role list — roster members whose raw role matches any requested role,
//  3. for-all flag — every active roster member,
//  4. otherwise empty.
func Resolve(spec TargetSpec, roster []Member, opts ...Option) map[string]struct{} {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	set := make(map[string]struct{})

	explicit := spec.UserIDs
	if id := NormalizeID(spec.UserID); id != "" {
		explicit = append([]string{id}, explicit...)
	}
	if ids := NormalizeIDs(explicit); len(ids) > 0 {
		for _, id := range ids {
			set[id] = struct{}{}
		}
		return set
	}

	if len(spec.Roles) > 0 {
		for _, m := range roster {
			if o.excludeAdmins && Classify(m.Role) == FamilyAdmin {
				continue
			}
			id := NormalizeID(m.ID)
			if id == "" {
				continue
			}
			for _, requested := range spec.Roles {
				if matchesRequestedRole(m.Role, requested) {
					set[id] = struct{}{}
					break
				}
			}
		}
		return set
	}

	if spec.ForAll {
		for _, m := range roster {
			if !m.Active {
				continue
			}
			if o.excludeAdmins && Classify(m.Role) == FamilyAdmin {
				continue
			}
			if id := NormalizeID(m.ID); id != "" {
				set[id] = struct{}{}
			}
		}
	}

	return set
}

// Composable filters a roster down to the users selectable as targets when
// composing a new broadcast: active members outside the admin family.
// Administrators are never valid notification targets.
func Composable(roster []Member) []Member {
	out := make([]Member, 0, len(roster))
	for _, m := range roster {
		if !m.Active {
			continue
		}
		if Classify(m.Role) == FamilyAdmin {
			continue
		}
		out = append(out, m)
	}
	return out
}
