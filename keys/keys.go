/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package keys defines the composite-key schema for the showcase single
// table. Every key is derived deterministically from an entity's type, id
// and (for child entities) its parent id, so keys can always be recomputed
// from domain identity alone.
package keys

// Key identifies one item in the table: partition key plus sort key.
type Key struct {
	PK string
	SK string
}

// String renders the key in the canonical "PK|SK" form used by the local
// backend and by log output.
func (k Key) String() string { return k.PK + "|" + k.SK }

// IsZero reports whether either half of the key is missing.
func (k Key) IsZero() bool { return k.PK == "" || k.SK == "" }

// IndexKeys carries the full denormalized key tuple written with every item.
// GSI values are empty for entities that do not participate in that index.
type IndexKeys struct {
	PK     string
	SK     string
	GSI1PK string
	GSI1SK string
	GSI2PK string
	GSI2SK string
}

// Primary returns the main-table key of the tuple.
func (ik IndexKeys) Primary() Key { return Key{PK: ik.PK, SK: ik.SK} }

// Key prefixes, one per entity type. A prefix doubles as the begins_with
// argument for range scans within a partition.
const (
	EventPrefix   = "EVENT#"
	ProjectPrefix = "PROJECT#"
	AwardPrefix   = "AWARD#"
	UserPrefix    = "USER#"
	EmailPrefix   = "EMAIL#"
)

// Constant GSI1 partition values used for the "all items of a type"
// access pattern.
const (
	AllEventsPK   = "EVENT"
	AllProjectsPK = "PROJECT"
	AllAwardsPK   = "AWARD"
)

// Partition keys
func EventPK(id string) string   { return EventPrefix + id }
func ProjectPK(id string) string { return ProjectPrefix + id }
func UserPK(id string) string    { return UserPrefix + id }

// Sort keys
func EventSK(id string) string   { return EventPrefix + id }
func ProjectSK(id string) string { return ProjectPrefix + id }
func AwardSK(id string) string   { return AwardPrefix + id }
func UserSK(id string) string    { return UserPrefix + id }

// GSI1 keys for email lookup. The email is used verbatim: the adapters
// derive index keys from stored attribute values, so any normalization
// (lowercasing) must happen before the record is written, not here.
func EmailGSI1PK(email string) string { return EmailPrefix + email }

// ForEvent computes the key tuple for an event. GSI1 groups every event
// under a single partition for the "all events" listing.
func ForEvent(id string) IndexKeys {
	return IndexKeys{
		PK:     EventPK(id),
		SK:     EventSK(id),
		GSI1PK: AllEventsPK,
		GSI1SK: EventSK(id),
	}
}

// ForProject computes the key tuple for a project. Projects live in their
// parent event's partition; GSI1 serves "all projects" and point lookup by
// project id, GSI2 serves "projects by submitting user".
func ForProject(eventID, submitterID, id string) IndexKeys {
	ik := IndexKeys{
		PK:     EventPK(eventID),
		SK:     ProjectSK(id),
		GSI1PK: AllProjectsPK,
		GSI1SK: ProjectSK(id),
	}
	if submitterID != "" {
		ik.GSI2PK = UserPK(submitterID)
		ik.GSI2SK = ProjectSK(id)
	}
	return ik
}

// ForPrizeAward computes the key tuple for a prize award, partitioned by
// the awarded project.
func ForPrizeAward(projectID, id string) IndexKeys {
	return IndexKeys{
		PK:     ProjectPK(projectID),
		SK:     AwardSK(id),
		GSI1PK: AllAwardsPK,
		GSI1SK: AwardSK(id),
	}
}

// ForUser computes the key tuple for a user. GSI1 supports lookup by email.
func ForUser(id, email string) IndexKeys {
	ik := IndexKeys{
		PK: UserPK(id),
		SK: UserSK(id),
	}
	if email != "" {
		ik.GSI1PK = EmailGSI1PK(email)
		ik.GSI1SK = "USER"
	}
	return ik
}

// Point-lookup keys for entities addressable without a secondary index.

// EventKey returns the main-table key for an event id.
func EventKey(id string) Key { return ForEvent(id).Primary() }

// ProjectKey returns the main-table key for a project; the parent event id
// is required because projects are stored inside the event partition.
func ProjectKey(eventID, id string) Key {
	return Key{PK: EventPK(eventID), SK: ProjectSK(id)}
}

// PrizeAwardKey returns the main-table key for a prize award within its
// project partition.
func PrizeAwardKey(projectID, id string) Key {
	return Key{PK: ProjectPK(projectID), SK: AwardSK(id)}
}

// UserKey returns the main-table key for a user id.
func UserKey(id string) Key { return ForUser(id, "").Primary() }
