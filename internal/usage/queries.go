package usage

const (
	schemaUserUsage = `
		CREATE TABLE IF NOT EXISTS user_usage (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			date DATE NOT NULL,
			images_generated INTEGER NOT NULL DEFAULT 0,
			prompts_enhanced INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, date)
		);
		CREATE INDEX IF NOT EXISTS idx_user_usage_user_id ON user_usage(user_id);
	`

	queryToday = `
		SELECT user_id, date, images_generated, prompts_enhanced, updated_at
		FROM user_usage
		WHERE user_id = $1 AND date = $2
	`

	queryLifetimeImages = `
		SELECT COALESCE(SUM(images_generated), 0)
		FROM user_usage
		WHERE user_id = $1
	`

	// single-statement upsert so concurrent increments cannot lose updates
	queryIncrementImages = `
		INSERT INTO user_usage (user_id, date, images_generated, prompts_enhanced)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (user_id, date)
		DO UPDATE SET images_generated = user_usage.images_generated + 1, updated_at = NOW()
	`

	queryIncrementEnhancements = `
		INSERT INTO user_usage (user_id, date, images_generated, prompts_enhanced)
		VALUES ($1, $2, 0, 1)
		ON CONFLICT (user_id, date)
		DO UPDATE SET prompts_enhanced = user_usage.prompts_enhanced + 1, updated_at = NOW()
	`

	queryLastSuccess = `
		SELECT created_at FROM generations
		WHERE user_id = $1 AND status = 'success'
		ORDER BY created_at DESC
		LIMIT 1
	`
)
