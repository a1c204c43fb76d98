package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// Connect opens PostgreSQL when the DSN looks like a postgres URL, otherwise
// a cgo-free SQLite database (":memory:" in tests, a file path locally).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// IsPostgres reports whether db talks to PostgreSQL. Row-level locking and the
// zone-overlap exclusion constraint only exist there; SQLite serializes
// writers on its own.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// Slot-based bookings are excluded: they copy the slot's window and share it
// deliberately, bounded by the slot capacity instead of the zone window.
const zoneOverlapConstraintDDL = `
	ALTER TABLE booking ADD CONSTRAINT bookings_no_zone_overlap
	EXCLUDE USING gist (
		zone_id WITH =,
		tsrange(datetime_from, datetime_to) WITH &&
	) WHERE (status <> 'cancelled' AND schedule_slot_id IS NULL)
`

// EnsureZoneOverlapConstraint installs the exclusion constraint that rejects
// two zone-direct bookings on the same zone with intersecting windows, as a
// backstop for writers racing past the in-transaction overlap check. No-op
// outside PostgreSQL.
func EnsureZoneOverlapConstraint(db *gorm.DB) error {
	if !IsPostgres(db) {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	if err := db.Exec("ALTER TABLE booking DROP CONSTRAINT IF EXISTS bookings_no_zone_overlap").Error; err != nil {
		return err
	}
	return db.Exec(zoneOverlapConstraintDDL).Error
}
