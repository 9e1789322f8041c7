package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedDemoData populates the demo store with sample compliance records.
// Idempotent — returns immediately when pilots already exist.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pilots`).Scan(&existing); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if existing > 0 {
		return nil // already seeded
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// --- Pilots ---
	pilots := [][]any{
		{"PLT-001", "John Smith", "Part 107", "4123456", "2026-05-15", 1, `["Night Operations"]`, 45.5, 234.0},
		{"PLT-002", "Jane Doe", "Part 107", "4789012", "2024-12-15", 0, `[]`, 30.0, 150.0}, // expired certificate
		{"PLT-003", "Bob Wilson", "Part 107", "4555666", "2027-03-01", 1, `["Night Operations","BVLOS"]`, 85.0, 500.0},
	}
	for _, p := range pilots {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pilots (id, name, certificate_type, certificate_number,
				certificate_expiry, certificate_valid, waivers,
				flight_hours_90_days, total_flight_hours)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, p...); err != nil {
			return fmt.Errorf("seed pilot %v: %w", p[0], err)
		}
	}

	// --- Aircraft ---
	aircraft := [][]any{
		{"AC-001", "N12345", "Holybro X500 V2", "HB-X500-12345", "2027-03-15", 1, 234.5, "2024-12-15", 18.5, 100.0, 156, "ArduCopter 4.5.1"},
		{"AC-002", "N67890", "DJI Matrice 300", "DJ-M300-67890", "2024-06-01", 0, 500.0, "2024-10-01", 50.0, 100.0, 300, "DJI v02.00.0000"}, // expired registration
		{"AC-003", "N11223", "Holybro X500 V2", "HB-X500-11223", "2026-12-31", 1, 95.0, "2024-06-15", 95.0, 100.0, 290, "ArduCopter 4.4.0"},  // maintenance nearly due
	}
	for _, a := range aircraft {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO aircraft (id, registration, make_model, serial_number,
				registration_expiry, registration_valid, total_flight_hours,
				last_maintenance_date, hours_since_maintenance,
				maintenance_interval_hours, battery_cycles, firmware_version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, a...); err != nil {
			return fmt.Errorf("seed aircraft %v: %w", a[0], err)
		}
	}

	// --- Flights ---
	flights := [][]any{
		{"FLT-TC01", "PLT-001", "AC-001", "2025-01-07 14:30:00", 780},
		{"FLT-TC02", "PLT-002", "AC-001", "2025-01-06 10:15:00", 650},
		{"FLT-TC03", "PLT-001", "AC-002", "2025-01-05 09:00:00", 1200},
		{"FLT-TC04", "PLT-003", "AC-003", "2025-01-04 16:45:00", 540},
	}
	for _, f := range flights {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO flights (id, pilot_id, aircraft_id, flight_datetime, duration_seconds)
			VALUES (?, ?, ?, ?, ?)`, f...); err != nil {
			return fmt.Errorf("seed flight %v: %w", f[0], err)
		}
	}

	// --- Missions ---
	missions := [][]any{
		{"MSN-001", "FLT-TC01", "Roof inspection", "Acme Roofing", "Downtown warehouse", 33.4484, -112.0740, "G", 0, nil, 150.0, 15.0},
		{"MSN-002", "FLT-TC03", "Site survey", "BuildCo", "Airport-adjacent lot", 33.4342, -112.0116, "D", 1, "LAANC-84213", 300.0, 25.0},
	}
	for _, m := range missions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO missions (id, flight_id, purpose, client_name, location_name,
				location_lat, location_lon, airspace_class, laanc_required,
				laanc_authorization_id, planned_altitude_ft, planned_duration_min)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, m...); err != nil {
			return fmt.Errorf("seed mission %v: %w", m[0], err)
		}
	}

	// --- Maintenance records ---
	maintenance := [][]any{
		{"AC-001", "2024-12-15", "scheduled", "100-hour inspection", "Tech A. Nguyen", 216.0, "interval"},
		{"AC-002", "2024-10-01", "repair", "Replaced rear-left motor after vibration alert", "Tech B. Ortiz", 450.0, "vibration warning"},
	}
	for _, r := range maintenance {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO maintenance_records (aircraft_id, date, type, description,
				technician, hours_at_service, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, r...); err != nil {
			return fmt.Errorf("seed maintenance for %v: %w", r[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
