package config

const (
	// DefaultDatabasePath is the default path for the reading log database
	DefaultDatabasePath = "./gelezen_boeken.db"

	// DefaultMaintenanceSchedule runs the cleanup jobs nightly at 03:00
	DefaultMaintenanceSchedule = "0 3 * * *"
)
