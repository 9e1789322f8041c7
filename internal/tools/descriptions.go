package tools

// Human-readable descriptions for the standard compliance entities. Entities
// outside this table fall back to "<name> data".
var entityDescriptions = map[string]string{
	"pilots":              "Pilot certifications and credentials",
	"aircraft":            "Aircraft registration and status",
	"flights":             "Flight logs and telemetry",
	"missions":            "Mission planning data",
	"maintenance_records": "Aircraft maintenance history",
}

// Descriptions for the standard compliance field names. Unknown fields fall
// back to the field name itself.
var fieldDescriptions = map[string]string{
	// Pilots
	"id":                   "Unique identifier",
	"name":                 "Full name",
	"certificate_type":     "Certificate type (Part 107, Part 61, etc.)",
	"certificate_number":   "FAA certificate number",
	"certificate_expiry":   "Certificate expiration date",
	"certificate_valid":    "Whether certificate is currently valid",
	"waivers":              "List of waivers held",
	"flight_hours_90_days": "Flight hours in last 90 days",
	"total_flight_hours":   "Total career flight hours",
	// Aircraft
	"registration":               "FAA registration number (N-number)",
	"make_model":                 "Aircraft make and model",
	"serial_number":              "Manufacturer serial number",
	"registration_expiry":        "Registration expiration date",
	"registration_valid":         "Whether registration is currently valid",
	"last_maintenance_date":      "Date of last maintenance",
	"hours_since_maintenance":    "Flight hours since last maintenance",
	"maintenance_interval_hours": "Required maintenance interval",
	"battery_cycles":             "Battery charge cycles",
	"firmware_version":           "Current firmware version",
	// Flights
	"pilot_id":         "Pilot identifier",
	"aircraft_id":      "Aircraft identifier",
	"flight_datetime":  "Flight date and time",
	"duration_seconds": "Flight duration in seconds",
	"max_altitude_ft":  "Maximum altitude reached (feet)",
	"max_speed_mph":    "Maximum speed reached (mph)",
	"takeoff_lat":      "Takeoff latitude",
	"takeoff_lon":      "Takeoff longitude",
	// Missions
	"flight_id":              "Associated flight identifier",
	"purpose":                "Mission purpose",
	"client_name":            "Client name",
	"location_name":          "Location name",
	"location_lat":           "Location latitude",
	"location_lon":           "Location longitude",
	"airspace_class":         "Airspace classification",
	"laanc_required":         "Whether LAANC authorization required",
	"laanc_authorization_id": "LAANC authorization ID",
	"planned_altitude_ft":    "Planned altitude (feet)",
	"planned_duration_min":   "Planned duration (minutes)",
	// Maintenance
	"date":             "Maintenance date",
	"type":             "Maintenance type",
	"description":      "Maintenance description",
	"technician":       "Technician name",
	"hours_at_service": "Aircraft hours at time of service",
	"reason":           "Reason for maintenance",
}

func describeEntityName(name string) string {
	if d, ok := entityDescriptions[name]; ok {
		return d
	}
	return name + " data"
}

func describeField(name string) string {
	if d, ok := fieldDescriptions[name]; ok {
		return d
	}
	return name
}
