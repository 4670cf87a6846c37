package review

// QueueIndex is the union of all identifiers already represented by existing
// queue items. It is derived fresh from the queue snapshot each evaluation
// cycle - a pure function of the snapshot, never shared mutable state - and
// is the sole mechanism keeping overlapping cycles from enqueueing the same
// event twice.
type QueueIndex map[string]struct{}

// BuildQueueIndex collects, for every item: its evidence-event back-reference,
// its own id, and any event_id/evidence_id carried in its context.
func BuildQueueIndex(items []QueueItem) QueueIndex {
	ix := make(QueueIndex, len(items)*2)
	for _, item := range items {
		ix.add(item.EvidenceEventID)
		ix.add(item.ID)
		ix.add(item.Context[ContextEventID])
		ix.add(item.Context[ContextEvidenceID])
	}
	return ix
}

// Has reports whether any of the given identifiers is already represented.
func (ix QueueIndex) Has(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := ix[id]; ok {
			return true
		}
	}
	return false
}

// Add records an item's identifiers, keeping the index consistent as the
// reconciler creates items mid-batch.
func (ix QueueIndex) Add(item QueueItem) {
	ix.add(item.EvidenceEventID)
	ix.add(item.ID)
	ix.add(item.Context[ContextEventID])
	ix.add(item.Context[ContextEvidenceID])
}

func (ix QueueIndex) add(id string) {
	if id != "" {
		ix[id] = struct{}{}
	}
}
