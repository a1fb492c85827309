package postgres

// SQL queries for Caliper event, webhook and sensor storage.

const (
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`

	eventColumns = `
			partition_key, sort_key, sensor_id, event_id, event_type, action,
			actor_id, object_id, object_type, event_time, send_time, event_index,
			stored_at, expires_at, payload`

	// queryInsertEvent stores one event. The (sensor_id, event_id) key makes
	// resubmission idempotent: a duplicate affects zero rows.
	queryInsertEvent = `
		INSERT INTO events (` + eventColumns + `
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (sensor_id, event_id) DO NOTHING
	`

	queryGetEvent = `
		SELECT` + eventColumns + `
		FROM events
		WHERE sensor_id = $1 AND event_id = $2
	`

	// eventFilter scopes reads to one sensor. Empty strings and NULL
	// timestamps disable their predicate so a single prepared statement
	// serves every combination of filters.
	eventFilter = `
		WHERE sensor_id = $1
		  AND ($2 = '' OR actor_id = $2)
		  AND ($3 = '' OR object_id = $3)
		  AND ($4 = '' OR event_type = $4)
		  AND ($5::timestamptz IS NULL OR event_time >= $5)
		  AND ($6::timestamptz IS NULL OR event_time <= $6)`

	// queryQueryEvents returns the newest events first. Events sharing an
	// event_time keep their envelope order.
	queryQueryEvents = `
		SELECT` + eventColumns + `
		FROM events` + eventFilter + `
		ORDER BY event_time DESC, event_index ASC
		LIMIT $7 OFFSET $8
	`

	queryCountByType = `
		SELECT event_type, COUNT(*)
		FROM events` + eventFilter + `
		GROUP BY event_type
		ORDER BY COUNT(*) DESC, event_type ASC
	`

	// queryListScores reads scores as text so no precision is lost between
	// the stored JSON and the decimal arithmetic done by the caller.
	queryListScores = `
		SELECT payload->'generated'->>'scoreGiven'
		FROM events` + eventFilter + `
		  AND event_type = 'GradeEvent'
		  AND payload->'generated'->>'scoreGiven' IS NOT NULL
	`

	queryDeleteExpired = `DELETE FROM events WHERE expires_at < $1`

	webhookColumns = `
			webhook_id, sensor_id, name, description, target_url, filters,
			active, headers, secret, created_at, updated_at`

	queryInsertWebhook = `
		INSERT INTO webhooks (` + webhookColumns + `
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	queryGetWebhook = `
		SELECT` + webhookColumns + `
		FROM webhooks
		WHERE sensor_id = $1 AND webhook_id = $2
	`

	queryListWebhooks = `
		SELECT` + webhookColumns + `
		FROM webhooks
		WHERE sensor_id = $1
		ORDER BY created_at ASC, webhook_id ASC
	`

	queryUpdateWebhook = `
		UPDATE webhooks
		SET name = $3, description = $4, target_url = $5, filters = $6,
		    active = $7, headers = $8, updated_at = $9
		WHERE sensor_id = $1 AND webhook_id = $2
	`

	queryDeleteWebhook = `DELETE FROM webhooks WHERE sensor_id = $1 AND webhook_id = $2`

	queryLookupSensor = `
		SELECT api_key, sensor_id, name, active
		FROM sensors
		WHERE api_key = $1
	`
)
