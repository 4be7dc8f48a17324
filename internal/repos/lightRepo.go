package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lifxbridge/internal/lifx"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS light_snapshot (
    id VARCHAR(32) PRIMARY KEY,
    uuid VARCHAR(36),
    label TEXT,
    connected INTEGER,
    power TEXT,
    brightness REAL,
    hue REAL,
    saturation REAL,
    kelvin INTEGER,
    product_name TEXT,
    group_name TEXT,
    location_name TEXT,
    last_seen TEXT,
    updated_at TIMESTAMP
  );
`

// StoredLight is one row of the last persisted refresh.
type StoredLight struct {
	ID           string
	UUID         string
	Label        string
	Connected    bool
	Power        string
	Brightness   float64
	Hue          float64
	Saturation   float64
	Kelvin       int
	ProductName  string
	GroupName    string
	LocationName string
	LastSeen     string
	UpdatedAt    time.Time
}

// LightRepo persists the latest light snapshot so the last-known state
// survives a daemon restart and can be inspected while the cloud is
// unreachable.
type LightRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewLightRepo(logger *log.Logger, db *sql.DB) (*LightRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("error initialising light snapshot schema: %w", err)
	}

	return &LightRepo{logger: logger, db: db}, nil
}

// ReplaceAll swaps the stored snapshot for the given one, mirroring how
// the coordinator replaces its map wholesale.
func (r *LightRepo) ReplaceAll(lights map[string]lifx.Light) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM light_snapshot"); err != nil {
		return fmt.Errorf("error clearing light snapshot: %w", err)
	}

	now := time.Now()
	for _, light := range lights {
		_, err := tx.Exec(
			`INSERT INTO light_snapshot
      (id, uuid, label, connected, power, brightness, hue, saturation, kelvin, product_name, group_name, location_name, last_seen, updated_at)
     VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
			light.ID,
			light.UUID,
			light.Label,
			light.Connected,
			light.Power,
			light.Brightness,
			light.Hue(),
			light.Saturation(),
			light.Kelvin(),
			light.Product.Name,
			light.Group.Name,
			light.Location.Name,
			light.LastSeen,
			now,
		)
		if err != nil {
			return fmt.Errorf("error storing light (%s): %w", light.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error storing light snapshot: %w", err)
	}

	return nil
}

func (r *LightRepo) GetAll() ([]StoredLight, error) {
	rows, err := r.db.Query(
		`SELECT id, uuid, label, connected, power, brightness, hue, saturation, kelvin, product_name, group_name, location_name, last_seen, updated_at
     FROM light_snapshot ORDER BY label, id`)
	if err != nil {
		return nil, fmt.Errorf("error reading light snapshot: %w", err)
	}
	defer rows.Close()

	var lights []StoredLight
	for rows.Next() {
		l := StoredLight{}
		if err := rows.Scan(
			&l.ID, &l.UUID, &l.Label, &l.Connected, &l.Power, &l.Brightness,
			&l.Hue, &l.Saturation, &l.Kelvin, &l.ProductName, &l.GroupName,
			&l.LocationName, &l.LastSeen, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error reading light snapshot row: %w", err)
		}
		lights = append(lights, l)
	}

	return lights, rows.Err()
}
