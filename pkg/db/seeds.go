package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DefaultHourTypes are the hour types created on a fresh database. The names
// are load-bearing: the summarizer keys the LOA exclusion rule and the Nova
// Scotia surcharge off them.
var DefaultHourTypes = []HourType{
	{Name: "Regular Time", Multiplier: 1},
	{Name: "Overtime", Multiplier: 1.5},
	{Name: "Double Time", Multiplier: 2},
	{Name: "Travel Time", Multiplier: 1},
	{Name: "LOA", Multiplier: 1},
	{Name: "NS Regular Time", Multiplier: 1},
	{Name: "NS Overtime", Multiplier: 1.5},
	{Name: "NS Double Time", Multiplier: 2},
}

// DefaultProvinces are the provinces created on a fresh database.
var DefaultProvinces = []Province{
	{Name: "Alberta", Code: "AB"},
	{Name: "British Columbia", Code: "BC"},
	{Name: "Manitoba", Code: "MB"},
	{Name: "New Brunswick", Code: "NB"},
	{Name: "Newfoundland and Labrador", Code: "NL"},
	{Name: "Nova Scotia", Code: "NS"},
	{Name: "Ontario", Code: "ON"},
	{Name: "Prince Edward Island", Code: "PE"},
	{Name: "Quebec", Code: "QC"},
	{Name: "Saskatchewan", Code: "SK"},
}

// Seed creates the default hour types and provinces. Existing rows with the
// same name or code are left untouched.
func Seed(db *sql.DB) error {
	dbx := NewDBx(db)
	tx, err := dbx.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := createDefaultHourTypes(tx); err != nil {
		return err
	}

	if err := createDefaultProvinces(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func createDefaultHourTypes(tx *sqlx.Tx) error {
	for _, ht := range DefaultHourTypes {
		exists, err := existsByColumn(tx, "hour_types", "name", ht.Name)
		if err != nil {
			return fmt.Errorf("error checking if hour type exists: %w", err)
		}
		if exists {
			continue
		}
		ht.Id = uuid.NewString()
		_, err = tx.NamedExec("INSERT INTO hour_types (id,name,multiplier) VALUES (:id,:name,:multiplier)", ht)
		if err != nil {
			return fmt.Errorf("error creating default hour type: %w", err)
		}
	}
	return nil
}

func createDefaultProvinces(tx *sqlx.Tx) error {
	for _, p := range DefaultProvinces {
		exists, err := existsByColumn(tx, "provinces", "code", p.Code)
		if err != nil {
			return fmt.Errorf("error checking if province exists: %w", err)
		}
		if exists {
			continue
		}
		p.Id = uuid.NewString()
		_, err = tx.NamedExec("INSERT INTO provinces (id,name,code) VALUES (:id,:name,:code)", p)
		if err != nil {
			return fmt.Errorf("error creating default province: %w", err)
		}
	}
	return nil
}

func existsByColumn(tx *sqlx.Tx, table, column, value string) (bool, error) {
	var exists bool
	err := tx.Get(&exists, fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", table, column), value)
	return exists, err
}
