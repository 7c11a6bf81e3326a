package repository

import (
	"context"
	"database/sql"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

const accountColumns = `id, email, password_hash, role, is_active, recovery_token_hash,
	tg_id, tg_nick, first_name, last_name, phone, country, image, created_at`

// UsersRepository хранит учётные записи пользователей.
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		a     models.Account
		role  string
		token sql.NullString
		tgID  sql.NullInt64
		phone sql.NullString
		image sql.NullString
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.IsActive, &token,
		&tgID, &a.TgNick, &a.FirstName, &a.LastName, &phone, &a.Country, &image, &a.CreatedAt)
	if err != nil {
		return models.Account{}, err
	}

	a.Role = models.Role(role)
	a.RecoveryTokenHash = utils.PtrIf(token.String, token.Valid)
	a.TgID = utils.PtrIf(tgID.Int64, tgID.Valid)
	a.Phone = utils.PtrIf(phone.String, phone.Valid)
	a.Image = utils.PtrIf(image.String, image.Valid)
	return a, nil
}

// Create сохраняет новый аккаунт вместе с хэшем токена подтверждения.
//
// Уникальность email и телефона обеспечивает БД: нарушение даёт ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, in models.NewAccount) (models.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role, is_active, recovery_token_hash,
		                    tg_id, tg_nick, first_name, last_name, phone, country)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING `+accountColumns,
		in.Email, in.PasswordHash, string(in.Role), in.IsActive, in.RecoveryTokenHash,
		in.TgID, in.TgNick, in.FirstName, in.LastName, in.Phone, in.Country,
	)

	a, err := scanAccount(row)
	if err != nil {
		return models.Account{}, mapError("users.Create", err)
	}
	return a, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return models.Account{}, mapError("users.GetByID", err)
	}
	return a, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE email=$1`, email))
	if err != nil {
		return models.Account{}, mapError("users.GetByEmail", err)
	}
	return a, nil
}

// GetByRecoveryHash ищет аккаунт по хэшу одноразового токена.
func (r *UsersRepository) GetByRecoveryHash(ctx context.Context, tokenHash string) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE recovery_token_hash=$1`, tokenHash))
	if err != nil {
		return models.Account{}, mapError("users.GetByRecoveryHash", err)
	}
	return a, nil
}

// SetRecoveryHash сохраняет хэш нового одноразового токена, заменяя прежний.
func (r *UsersRepository) SetRecoveryHash(ctx context.Context, id int64, tokenHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET recovery_token_hash=$2 WHERE id=$1`, id, tokenHash)
	if err != nil {
		return mapError("users.SetRecoveryHash", err)
	}
	return expectAffected("users.SetRecoveryHash", res)
}

// Activate активирует неактивный аккаунт по хэшу токена и сразу гасит токен.
//
// Условие в WHERE делает операцию одноразовой: при гонке второй запрос
// получит ErrNotFound.
func (r *UsersRepository) Activate(ctx context.Context, tokenHash string) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`UPDATE users
		    SET is_active = TRUE,
		        recovery_token_hash = NULL
		  WHERE recovery_token_hash = $1
		    AND is_active = FALSE
		 RETURNING `+accountColumns, tokenHash))
	if err != nil {
		return models.Account{}, mapError("users.Activate", err)
	}
	return a, nil
}

// ResetPassword меняет хэш пароля активного аккаунта, если токен совпал,
// и гасит токен. Несовпадение токена даёт ErrNotFound.
func (r *UsersRepository) ResetPassword(ctx context.Context, id int64, tokenHash, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		    SET password_hash = $3,
		        recovery_token_hash = NULL
		  WHERE id = $1
		    AND recovery_token_hash = $2
		    AND is_active = TRUE`,
		id, tokenHash, passwordHash)
	if err != nil {
		return mapError("users.ResetPassword", err)
	}
	return expectAffected("users.ResetPassword", res)
}

// List возвращает страницу пользователей, новые первыми.
func (r *UsersRepository) List(ctx context.Context, f models.AccountFilter, p models.PageRequest) (models.Page[models.Account], error) {
	pattern := containsPattern(f.Email)

	var page models.Page[models.Account]
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE ($1 = '' OR email ILIKE $1 ESCAPE '\')`, pattern,
	).Scan(&page.Count); err != nil {
		return page, mapError("users.List", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM users
		  WHERE ($1 = '' OR email ILIKE $1 ESCAPE '\')
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		pattern, p.Size, p.Offset())
	if err != nil {
		return page, mapError("users.List", err)
	}
	defer rows.Close()

	page.Items = make([]models.Account, 0, p.Size)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return page, mapError("users.List", err)
		}
		page.Items = append(page.Items, a)
	}
	if err := rows.Err(); err != nil {
		return page, mapError("users.List", err)
	}
	return page, nil
}

// Update применяет частичное изменение профиля и возвращает итоговую запись.
func (r *UsersRepository) Update(ctx context.Context, id int64, p models.AccountPatch) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`UPDATE users SET
		        tg_id         = COALESCE($2, tg_id),
		        tg_nick       = COALESCE($3, tg_nick),
		        first_name    = COALESCE($4, first_name),
		        last_name     = COALESCE($5, last_name),
		        phone         = CASE WHEN $6::text IS NULL THEN phone ELSE NULLIF($6::text, '') END,
		        country       = COALESCE($7, country),
		        image         = CASE WHEN $8::text IS NULL THEN image ELSE NULLIF($8::text, '') END,
		        password_hash = COALESCE($9, password_hash)
		  WHERE id = $1
		 RETURNING `+accountColumns,
		id, p.TgID, p.TgNick, p.FirstName, p.LastName, p.Phone, p.Country, p.Image, p.PasswordHash))
	if err != nil {
		return models.Account{}, mapError("users.Update", err)
	}
	return a, nil
}

// Delete удаляет аккаунт. Объявления, отзывы и сессии удаляются каскадом.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return mapError("users.Delete", err)
	}
	return expectAffected("users.Delete", res)
}

// UpsertAdmin создаёт активного администратора или повышает существующий аккаунт.
func (r *UsersRepository) UpsertAdmin(ctx context.Context, email, passwordHash string) (models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role, is_active)
		 VALUES ($1, $2, 'admin', TRUE)
		 ON CONFLICT (email) DO UPDATE
		    SET role = 'admin',
		        is_active = TRUE
		 RETURNING `+accountColumns, email, passwordHash))
	if err != nil {
		return models.Account{}, mapError("users.UpsertAdmin", err)
	}
	return a, nil
}
