package db

import (
	"fmt"

	"github.com/google/uuid"
)

// CreateTimeEntry inserts a time entry and returns the stored row.
// The id is generated when empty.
func CreateTimeEntry(p NamedPreparer, entry TimeEntry) (TimeEntry, error) {
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	var created TimeEntry
	err := GetNamed(p, &created,
		`INSERT INTO time_entries (id,employee_id,job_id,hour_type_id,province_id,date,hours,loa_count)
			VALUES (:id,:employee_id,:job_id,:hour_type_id,:province_id,:date::date,:hours,:loa_count)
			RETURNING id, employee_id, job_id, hour_type_id, province_id,
				to_char(date, 'YYYY-MM-DD') AS date, hours, loa_count, created_at`,
		entry)
	if err != nil {
		return created, fmt.Errorf("failed to create time entry: %w", err)
	}
	return created, nil
}

// CreateRentalEntry inserts a rental entry and returns the stored row.
// The id is generated when empty.
func CreateRentalEntry(p NamedPreparer, entry RentalEntry) (RentalEntry, error) {
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	var created RentalEntry
	err := GetNamed(p, &created,
		`INSERT INTO rental_entries (id,item_id,job_id,employee_id,start_date,end_date,quantity,unit,rate,dsp_rate,description)
			VALUES (:id,:item_id,:job_id,:employee_id,:start_date::date,:end_date::date,:quantity,:unit,:rate,:dsp_rate,:description)
			RETURNING id, item_id, job_id, employee_id,
				to_char(start_date, 'YYYY-MM-DD') AS start_date,
				to_char(end_date, 'YYYY-MM-DD') AS end_date,
				quantity, unit, rate, dsp_rate, description, created_at`,
		entry)
	if err != nil {
		return created, fmt.Errorf("failed to create rental entry: %w", err)
	}
	return created, nil
}
