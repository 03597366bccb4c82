package constant

// List modes of GET /activities, used as metric labels.
const (
	ListModeFlat = "flat"
	ListModeFull = "full"
)
