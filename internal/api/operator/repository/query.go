package operatorRepository

const (
	queryGetOperatorByEmail = `
		SELECT
			id,
			email,
			name,
			password,
			created_at,
			updated_at
		FROM operators
		WHERE email = :email
	`

	queryGetOperatorByID = `
		SELECT
			id,
			email,
			name,
			password,
			created_at,
			updated_at
		FROM operators
		WHERE id = :id
	`
)
