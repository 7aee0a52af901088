package constants

// Default values for the created_by and updated_by audit columns when a
// record is written by the pipeline rather than a person.
const (
	CreatedBySystem = "system"
	UpdatedBySystem = "system"
)
