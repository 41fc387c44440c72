package queries

const (
	passcodeColumns = `id, user_id, code_hash, channel, expires_at, consumed, consumed_at, created_at`

	CreatePasscode = `
		INSERT INTO passcodes (user_id, code_hash, channel, expires_at, consumed, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING ` + passcodeColumns

	// ConsumePasscode marks the newest outstanding, unexpired match consumed.
	// The row lock plus the consumed guard let exactly one concurrent caller win.
	ConsumePasscode = `
		UPDATE passcodes
		SET consumed = TRUE, consumed_at = $4
		WHERE id = (
			SELECT id FROM passcodes
			WHERE user_id = $1
			  AND channel = $2
			  AND code_hash = $3
			  AND consumed = FALSE
			  AND expires_at > $4
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		AND consumed = FALSE
		RETURNING ` + passcodeColumns
)
