package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/user"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         null.String    `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	IsActive     null.Bool      `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash null.Bytes     `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (r userRow) unrow() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name.String,
		Username:     r.Username.String,
		Email:        r.Email.String,
		IsActive:     r.IsActive.Ptr(),
		Roles:        r.Roles,
		PasswordHash: r.PasswordHash.Bytes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		LastLogin:    r.LastLogin.Time,
	}
}

func rowFromUser(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Name:         null.NewString(usr.Name, usr.Name != ""),
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		IsActive:     null.BoolFromPtr(usr.IsActive),
		Roles:        usr.Roles,
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func unrowUserSlice(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.unrow())
	}
	return users
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	var conds []string
	var args []interface{}
	if username != "" {
		conds = append(conds, "username = ?")
		args = append(args, username)
	}
	if email != "" {
		conds = append(conds, "email = ?")
		args = append(args, email)
	}
	if len(conds) == 0 {
		return nil
	}

	query := `SELECT username, email FROM "user" WHERE (` + strings.Join(conds, " OR ") + `)`
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		query += " AND id NOT IN (?)"
		var err error
		query, args, err = sqlx.In(query, append(args, ids)...)
		if err != nil {
			return errors.Wrap(err, "expanding user uniqueness query")
		}
	}

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	for _, row := range rows {
		if username != "" && row.Username.String == username {
			return user.ErrUsernameExists
		}
		if email != "" && row.Email.String == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (id, name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :name, :username, :email, :is_active, :roles, :password_hash, :created_at, :updated_at, :last_login)`,
		rowFromUser(usr))
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM "user" ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return unrowUserSlice(rows), nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM "user" WHERE id = $1`, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return row.unrow(), nil
}

func (repo userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM "user" WHERE username = $1`, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by username")
	}
	return row.unrow(), nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM "user" WHERE email = $1`, email); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return row.unrow(), nil
}

func (repo userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM "user" WHERE username = $1 OR email = $1`, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user")
	}
	return row.unrow(), nil
}

func (repo userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	conds := []string{"TRUE"}
	var args []interface{}

	// users with Name, Username or Email matching the search keyword
	if filter.Search != "" {
		conds = append(conds, "(name ILIKE ? OR username ILIKE ? OR email ILIKE ?)")
		val := "%" + filter.Search + "%"
		args = append(args, val, val, val)
	}
	// users with any role that starts with any of the provided roles
	if len(filter.Roles) > 0 {
		roleConds := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			roleConds = append(roleConds, `id IN (SELECT id FROM "user", UNNEST(roles) user_role WHERE user_role ILIKE ?)`)
			args = append(args, role+"%")
		}
		conds = append(conds, "("+strings.Join(roleConds, " OR ")+")")
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, filter.CreatedTo.UTC())
	}

	query := `SELECT * FROM "user" WHERE ` + strings.Join(conds, " AND ") + orderBy(ordering, "created_at ASC")
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return unrowUserSlice(rows), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	// only save set fields
	sets := []string{"updated_at = ?"}
	args := []interface{}{usr.UpdatedAt.UTC()}
	if usr.Name != "" {
		sets = append(sets, "name = ?")
		args = append(args, usr.Name)
	}
	if usr.Username != "" {
		sets = append(sets, "username = ?")
		args = append(args, usr.Username)
	}
	if usr.Email != "" {
		sets = append(sets, "email = ?")
		args = append(args, usr.Email)
	}
	if usr.Roles != nil {
		sets = append(sets, "roles = ?")
		args = append(args, pq.StringArray(usr.Roles))
	}
	if usr.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, usr.PasswordHash)
	}
	if isActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *isActive)
	}
	args = append(args, usr.ID)

	query := repo.db.Rebind(`UPDATE "user" SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(ctx, usr.ID)
}

func (repo userRepository) SetLastLogin(ctx context.Context, usr user.User) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE "user" SET last_login = $1 WHERE id = $2`, usr.LastLogin.UTC(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "setting last login")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "expanding user delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
