package postgres

import "errors"

var (
	// ErrBattlefieldNotFound is returned when a battlefield lookup yields no results.
	ErrBattlefieldNotFound = errors.New("battlefield not found")
	// ErrBattlefieldNameTaken is returned when storing a battlefield under a name already in use.
	ErrBattlefieldNameTaken = errors.New("battlefield name already taken")
	// ErrBattleNotFound is returned when a battle lookup yields no results.
	ErrBattleNotFound = errors.New("battle not found")
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// isDuplicateKeyError reports whether err is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	return hasSQLState(err, sqlStateUniqueViolation)
}

// isForeignKeyError reports whether err is a foreign key violation.
func isForeignKeyError(err error) bool {
	return hasSQLState(err, sqlStateForeignKeyViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == code
}
