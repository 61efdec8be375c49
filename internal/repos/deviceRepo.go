package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/models"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS device (
    instance_id INTEGER PRIMARY KEY,
    name TEXT,
    device_type INTEGER,
    creation_date TIMESTAMP,
    removed INTEGER,
    on_state INTEGER,
    brightness INTEGER,
    colour_hex TEXT,
    hue INTEGER,
    saturation INTEGER,
    colour_x INTEGER,
    colour_y INTEGER,
    colour_temp INTEGER,
    last_change_time TIMESTAMP
  );

  DELETE FROM device;
`

var lightColumns = map[models.Field]string{
	models.FieldOn:                "on_state",
	models.FieldBrightness:        "brightness",
	models.FieldColourHex:         "colour_hex",
	models.FieldHue:               "hue",
	models.FieldSaturation:        "saturation",
	models.FieldColourX:           "colour_x",
	models.FieldColourY:           "colour_y",
	models.FieldColourTemperature: "colour_temp",
}

// DeviceRepo records the devices found on the gateway and the light state seen since.
type DeviceRepo struct {
	logger *log.Logger
	db     *sql.DB
}

// Open opens the sqlite database at path, ":memory:" for an in-memory database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("Error opening database (%s): %w", path, err)
	}
	// in-memory databases are per connection
	db.SetMaxOpenConns(1)
	return db, nil
}

func NewDeviceRepo(logger *log.Logger, db *sql.DB) (*DeviceRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising device schema: %w", err)
	}

	return &DeviceRepo{logger: logger, db: db}, nil
}

func (r *DeviceRepo) Add(devices []models.Device) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error adding devices: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range devices {
		state := models.LightProperties{}
		if d.Light != nil {
			state = *d.Light
		}
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO device
      (instance_id, name, device_type, creation_date, removed, on_state, brightness, colour_hex, hue, saturation, colour_x, colour_y, colour_temp)
     VALUES ($1, $2, $3, $4, NULL, $5, $6, $7, $8, $9, $10, $11, $12);`,
			d.InstanceID,
			d.Name,
			int(d.Type),
			d.CreationDate,
			state.On,
			state.Brightness,
			state.ColourHex,
			state.Hue,
			state.Saturation,
			state.ColourX,
			state.ColourY,
			state.ColourTemperature,
		)
		if err != nil {
			return fmt.Errorf("Error adding device (%s): %w", d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Error adding devices: %w", err)
	}
	return nil
}

// AddPending records a device that has been paired but not read yet.
func (r *DeviceRepo) AddPending(instanceID int) error {
	_, err := r.db.Exec(
		`INSERT INTO device (instance_id, device_type) VALUES ($1, $2)
     ON CONFLICT(instance_id) DO UPDATE SET removed = NULL`,
		instanceID, int(models.DeviceTypeUnknown))
	if err != nil {
		return fmt.Errorf("Error adding device (%d): %w", instanceID, err)
	}
	return nil
}

func (r *DeviceRepo) MarkRemoved(instanceID int) error {
	_, err := r.db.Exec("UPDATE device SET removed = true WHERE instance_id = $1", instanceID)
	if err != nil {
		return fmt.Errorf("Error marking device (%d) as removed: %w", instanceID, err)
	}
	return nil
}

// SetLightField stores a changed light attribute, a nil value clears it.
func (r *DeviceRepo) SetLightField(instanceID int, field models.Field, value any) error {
	column, found := lightColumns[field]
	if !found {
		return fmt.Errorf("Error setting light (%d) %s: not stored", instanceID, field)
	}

	_, err := r.db.Exec(
		fmt.Sprintf("UPDATE device SET %s = $1, last_change_time = $2 WHERE instance_id = $3", column),
		value, time.Now(), instanceID)
	if err != nil {
		return fmt.Errorf("Error setting light (%d) %s to %v: %w", instanceID, field, value, err)
	}
	return nil
}

// GetAllLights returns the lights that are still paired, ordered by name.
func (r *DeviceRepo) GetAllLights() ([]models.Light, error) {
	rows, err := r.db.Query(selectLights+" ORDER BY name, instance_id", int(models.DeviceTypeLight))
	if err != nil {
		return nil, fmt.Errorf("Error reading lights: %w", err)
	}
	defer rows.Close()

	lights := []models.Light{}
	for rows.Next() {
		light, err := scanLight(rows)
		if err != nil {
			return nil, fmt.Errorf("Error reading lights: %w", err)
		}
		lights = append(lights, light)
	}
	return lights, rows.Err()
}

const selectLights = `
  SELECT instance_id, name, on_state, brightness, colour_hex, hue, saturation, colour_x, colour_y, colour_temp
  FROM device
  WHERE removed IS NULL AND device_type = $1`

type scanner interface {
	Scan(dest ...any) error
}

func scanLight(row scanner) (models.Light, error) {
	var (
		id         int
		name       sql.NullString
		on         sql.NullBool
		brightness sql.NullInt64
		hex        sql.NullString
		hue        sql.NullInt64
		saturation sql.NullInt64
		x          sql.NullInt64
		y          sql.NullInt64
		temp       sql.NullInt64
	)
	if err := row.Scan(&id, &name, &on, &brightness, &hex, &hue, &saturation, &x, &y, &temp); err != nil {
		return models.Light{}, err
	}

	return models.Light{
		InstanceID: id,
		Name:       name.String,
		State: models.LightProperties{
			On:                nullable(on.Bool, on.Valid),
			Brightness:        nullableInt(brightness),
			ColourHex:         nullable(hex.String, hex.Valid),
			Hue:               nullableInt(hue),
			Saturation:        nullableInt(saturation),
			ColourX:           nullableInt(x),
			ColourY:           nullableInt(y),
			ColourTemperature: nullableInt(temp),
		},
	}, nil
}

func nullable[T any](v T, valid bool) *T {
	if !valid {
		return nil
	}
	return lo.ToPtr(v)
}

func nullableInt(v sql.NullInt64) *int {
	return nullable(int(v.Int64), v.Valid)
}
