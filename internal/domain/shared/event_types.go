package shared

// EventType names the change that produced a journal event
type EventType string

const (
	EventJournalUpdated   EventType = "JOURNAL_UPDATED"
	EventJournalDeleted   EventType = "JOURNAL_DELETED"
	EventEntryCreated     EventType = "ENTRY_CREATED"
	EventEntryUpdated     EventType = "ENTRY_UPDATED"
	EventEntryDeleted     EventType = "ENTRY_DELETED"
	EventChecklistUpdated EventType = "CHECKLIST_UPDATED"
	EventTemplatesChanged EventType = "TEMPLATES_CHANGED"
)

// IsValid reports whether the type is one of the known event types
func (t EventType) IsValid() bool {
	switch t {
	case EventJournalUpdated, EventJournalDeleted, EventEntryCreated, EventEntryUpdated,
		EventEntryDeleted, EventChecklistUpdated, EventTemplatesChanged:
		return true
	}
	return false
}

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusPublished       OutboxStatus = "PUBLISHED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
