package ability

// Package ability derives the permission set for an acting user from their
// role and plan. Evaluation is pure: no storage access, no side effects.
// Rules are layered the way the original permission config layered them —
// later rules override earlier ones, so a plan can grant a broad verb and
// then carve a single action back out of it.

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManage covers create, read, update and delete.
	ActionManage Action = "manage"
)

type Resource string

const (
	ResourceGroup   Resource = "group"
	ResourcePost    Resource = "post"
	ResourceComment Resource = "comment"
	ResourceUser    Resource = "user"
	// ResourceAll matches every resource type.
	ResourceAll Resource = "all"
)

type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
	PlanNone    Plan = "none"
)

// ParsePlan normalizes the stored plan string into the closed enumeration.
// The legacy data wrote "Premium" with a capital P, so matching is lenient.
func ParsePlan(s string) Plan {
	switch s {
	case "basic":
		return PlanBasic
	case "premium", "Premium":
		return PlanPremium
	default:
		return PlanNone
	}
}

// Subject is the acting user as the evaluator sees it: identity, role flag
// and plan. Callers build it from the authenticated user and pass it
// explicitly into every check.
type Subject struct {
	ID    int64
	Admin bool
	Plan  Plan
}

type rule struct {
	allow     bool
	action    Action
	resource  Resource
	ownerOnly bool
}

func (r rule) matches(action Action, resource Resource) bool {
	if r.action != ActionManage && r.action != action {
		return false
	}
	if r.resource != ResourceAll && r.resource != resource {
		return false
	}
	return true
}

// PermissionSet is the derived, non-persisted grant for one subject.
type PermissionSet struct {
	subject Subject
	rules   []rule
}

func (ps *PermissionSet) can(action Action, resource Resource, ownerOnly bool) {
	ps.rules = append(ps.rules, rule{allow: true, action: action, resource: resource, ownerOnly: ownerOnly})
}

func (ps *PermissionSet) cannot(action Action, resource Resource) {
	ps.rules = append(ps.rules, rule{allow: false, action: action, resource: resource})
}

// Evaluate computes the permission set for a subject. The admin role
// short-circuits all plan logic.
func Evaluate(s Subject) PermissionSet {
	ps := PermissionSet{subject: s}

	if s.Admin {
		ps.can(ActionManage, ResourceAll, false)
		return ps
	}

	switch s.Plan {
	case PlanBasic:
		ps.can(ActionManage, ResourceGroup, false)
		ps.can(ActionManage, ResourcePost, true)
		ps.can(ActionManage, ResourceComment, true)
		// basic keeps manage on Group minus create; the deny must stay
		// after the grant so it wins.
		ps.cannot(ActionCreate, ResourceGroup)
	case PlanPremium:
		ps.can(ActionManage, ResourceGroup, false)
		ps.can(ActionManage, ResourcePost, true)
		ps.can(ActionCreate, ResourceGroup, false)
		ps.can(ActionManage, ResourceComment, true)
	default:
		ps.can(ActionManage, ResourcePost, true)
		ps.can(ActionCreate, ResourcePost, true)
		ps.can(ActionManage, ResourceComment, true)
		ps.can(ActionRead, ResourceAll, false)
	}

	return ps
}

// Can reports whether the subject may perform action on the resource class.
// Owner-scoped rules count as a grant here; use CanOwn when a concrete
// record with an owner is at hand.
func (ps PermissionSet) Can(action Action, resource Resource) bool {
	for i := len(ps.rules) - 1; i >= 0; i-- {
		r := ps.rules[i]
		if !r.matches(action, resource) {
			continue
		}
		return r.allow
	}
	return false
}

// CanOwn reports whether the subject may perform action on a record owned
// by ownerID. Owner-scoped rules only apply when the owner is the subject;
// a non-applying rule falls through to earlier rules rather than denying.
func (ps PermissionSet) CanOwn(action Action, resource Resource, ownerID int64) bool {
	for i := len(ps.rules) - 1; i >= 0; i-- {
		r := ps.rules[i]
		if !r.matches(action, resource) {
			continue
		}
		if r.ownerOnly && ownerID != ps.subject.ID {
			continue
		}
		return r.allow
	}
	return false
}

// May is a convenience for one-off checks without holding on to the set.
func May(s Subject, action Action, resource Resource) bool {
	ps := Evaluate(s)
	return ps.Can(action, resource)
}

// MayOwn is the record-scoped counterpart of May.
func MayOwn(s Subject, action Action, resource Resource, ownerID int64) bool {
	ps := Evaluate(s)
	return ps.CanOwn(action, resource, ownerID)
}
