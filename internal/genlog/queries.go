package genlog

const (
	schemaGenerations = `
		CREATE TABLE IF NOT EXISTS generations (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			prompt TEXT NOT NULL,
			model_used VARCHAR(100) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			detail JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_generations_user_status
			ON generations(user_id, status, created_at DESC);

		CREATE TABLE IF NOT EXISTS moderation_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			content TEXT NOT NULL,
			content_type VARCHAR(50) NOT NULL,
			flags JSONB NOT NULL,
			action VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	queryInsertAttempt = `
		INSERT INTO generations (id, user_id, prompt, model_used, status, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	queryFinishAttempt = `
		UPDATE generations
		SET status = $1, detail = $2
		WHERE id = $3 AND status = 'pending'
	`

	queryInsertModeration = `
		INSERT INTO moderation_logs (user_id, content, content_type, flags, action)
		VALUES ($1, $2, $3, $4, $5)
	`
)
