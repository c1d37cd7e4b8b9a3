// Package storageevents holds the change-notification types shared by
// the operations engine (which emits them on successful writes) and
// the change watcher (which emits them from polling diffs).
package storageevents

// ChangeType classifies a StorageChangedEventArgs.
type ChangeType int

const (
	Created ChangeType = iota
	Deleted
	Modified
	Renamed
)

func (c ChangeType) String() string {
	switch c {
	case Created:
		return "Created"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	case Renamed:
		return "Renamed"
	default:
		return "Unknown"
	}
}

// Info is a minimal snapshot carried alongside a change event; kept
// decoupled from storageinfo.Record so this package has no dependency
// on the platform stat layer.
type Info struct {
	Path  string
	Size  int64
	IsDir bool
}

// Changed is the event payload delivered to subscribers: path,
// change type, and before/after snapshots (either may be absent,
// e.g. OldInfo is nil for a Created event).
type Changed struct {
	Path       string
	ChangeType ChangeType
	OldInfo    *Info
	NewInfo    *Info
}

// Sink receives change notifications. The operations engine and the
// change watcher both publish through the same interface so a single
// subscriber can observe both sources.
type Sink interface {
	Publish(Changed)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Changed)

func (f SinkFunc) Publish(c Changed) { f(c) }

// Discard is a Sink that drops every event; used as the default when
// a caller doesn't care about notifications.
var Discard Sink = SinkFunc(func(Changed) {})
