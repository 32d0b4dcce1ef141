package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, username, email, password, is_admin, created_at)
VALUES (:id, :username, :email, :password, :is_admin, :created_at)`

	queryGetByID = `
SELECT id, username, email, password, is_admin, created_at
FROM users
    WHERE id = :id`

	queryGetByUsername = `
SELECT id, username, email, password, is_admin, created_at
FROM users
    WHERE username = :username`
)
