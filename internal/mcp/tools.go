package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_locations",
				"description": "List the practice locations this server can compute KPIs for.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name": "compute_kpis",
				"description": "Compute the full historical KPI bundle (daily, weekly, monthly, latest) for one location: " +
					"production, collection rate, new patients, case acceptance, hygiene reappointment. " +
					"A KPI whose source sheet or columns are unavailable returns empty series and a null latest value; " +
					"treat that as 'no data', never as zero.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"location":      map[string]interface{}{"type": "string", "description": "Location key, e.g. 'baytown'"},
						"lookback_days": map[string]interface{}{"type": "integer", "description": "Days of daily history to retain (default from server config)"},
					},
					"required": []string{"location"},
				},
			},
			map[string]interface{}{
				"name": "latest_snapshot",
				"description": "Get only the most recent operational day's value per KPI for one location. " +
					"Sundays roll back to Saturday; a KPI with no data for the latest operational day is null.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"location": map[string]interface{}{"type": "string", "description": "Location key, e.g. 'baytown'"},
					},
					"required": []string{"location"},
				},
			},
		},
	}
}
