package dashboard

import "errors"

// Errors returned by the commands mutating a State. None of them leaves a
// partially modified State behind.
var (
	// ErrMalformedBackup is returned when a backup document cannot be restored.
	ErrMalformedBackup = errors.New("malformed backup")
	// ErrAmbiguousID is returned when an id prefix matches several positions.
	ErrAmbiguousID = errors.New("ambiguous position id")
	// ErrEmptyCSV is returned when a CSV file has no data row.
	ErrEmptyCSV = errors.New("CSV looks empty")
	// ErrEmptyImport is returned when no row could be mapped to a position.
	ErrEmptyImport = errors.New("no rows imported (check headers)")
	// ErrInvalidTargets is returned when sleeve targets do not sum to 100%.
	ErrInvalidTargets = errors.New("invalid sleeve targets")
	// ErrNameRequired is returned when saving a position without a name.
	ErrNameRequired = errors.New("name is required")
	// ErrPositionNotFound is returned when no position has the given id.
	ErrPositionNotFound = errors.New("position not found")
	// ErrUnknownImportMode is returned for an import mode other than positions or balances.
	ErrUnknownImportMode = errors.New("unknown import mode")
)
