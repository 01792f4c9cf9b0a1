package tui

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// TickMsg redraws the visible screen. The services keep their own schedules;
// this only pulls fresh snapshots once a second.
type TickMsg struct{}
