// Package sqlite persists frames to and loads frames from SQLite databases.
// It implements the transform.FrameSource and transform.FrameSink interfaces
// so pipelines can read their input from a table and write their output
// back.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/asaidimu/go-rowwise/core/frame"
	"github.com/asaidimu/go-rowwise/core/transform"
)

// dbRunner provides an abstraction over *sql.DB and *sql.Tx, allowing the
// store's methods to work identically in transactional and
// non-transactional contexts.
type dbRunner interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StoreOptions configures how the store manages its tables.
type StoreOptions struct {
	IfNotExists bool   // Guard CREATE TABLE statements with IF NOT EXISTS.
	TablePrefix string // Prefix applied to every table name.
}

// DefaultStoreOptions returns a set of sensible default options for the
// store.
func DefaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		IfNotExists: true, // Prevent errors if a table already exists.
	}
}

// Store reads and writes frames against a SQLite database. A store can
// operate in both transactional and non-transactional modes.
type Store struct {
	db      *sql.DB
	tx      *sql.Tx
	options *StoreOptions
	logger  *zap.Logger
}

// Ensure Store satisfies the transform source and sink interfaces.
var (
	_ transform.FrameSource = (*Store)(nil)
	_ transform.FrameSink   = (*Store)(nil)
)

// NewStore creates a new Store instance. Passing a non-nil *sql.Tx scopes
// every operation to that transaction.
func NewStore(db *sql.DB, logger *zap.Logger, options *StoreOptions, tx *sql.Tx) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultStoreOptions()
	}
	return &Store{db: db, tx: tx, options: options, logger: logger}
}

// runner returns the appropriate dbRunner for the current context, either
// the database connection pool or the active transaction.
func (s *Store) runner() dbRunner {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// getTableName constructs the full, quoted table name by applying the
// configured prefix to the base name.
func (s *Store) getTableName(baseName string) string {
	return quoteIdentifier(s.options.TablePrefix + baseName)
}

// createTableSQL generates the DDL statement for a table shaped like fr.
func (s *Store) createTableSQL(name string, fr *frame.Frame) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if s.options.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(s.getTableName(name))
	sb.WriteString(" (\n")

	definitions := make([]string, 0, fr.Width())
	for _, col := range fr.Columns() {
		definitions = append(definitions, "    "+quoteIdentifier(col.Name)+" "+columnType(col.Kind))
	}
	sb.WriteString(strings.Join(definitions, ",\n"))
	sb.WriteString("\n);")
	return sb.String()
}

// insertSQL builds a single batched INSERT statement covering every row of
// fr, together with its bound parameters in row-major order.
func (s *Store) insertSQL(name string, fr *frame.Frame) (string, []any, error) {
	columns := fr.Columns()
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		names[i] = quoteIdentifier(col.Name)
		marks[i] = "?"
	}
	placeholder := "(" + strings.Join(marks, ", ") + ")"

	rows := make([]string, fr.Len())
	params := make([]any, 0, fr.Len()*len(columns))
	for ri := 0; ri < fr.Len(); ri++ {
		rows[ri] = placeholder
		for _, col := range columns {
			bound, err := bindValue(col.Kind, col.Values[ri])
			if err != nil {
				return "", nil, fmt.Errorf("column %q row %d: %w", col.Name, ri, err)
			}
			params = append(params, bound)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s;",
		s.getTableName(name), strings.Join(names, ", "), strings.Join(rows, ", "))
	return query, params, nil
}

// Save creates a table shaped like fr and inserts every row in frame order.
// When the store is not already transactional the writes run inside a fresh
// transaction, so a failed insert leaves no partial table contents behind.
func (s *Store) Save(ctx context.Context, name string, fr *frame.Frame) error {
	runner := s.runner()
	var local *sql.Tx
	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		local = tx
		runner = tx
	}

	if err := s.save(ctx, runner, name, fr); err != nil {
		if local != nil {
			local.Rollback()
		}
		return err
	}

	if local != nil {
		if err := local.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}
	return nil
}

func (s *Store) save(ctx context.Context, runner dbRunner, name string, fr *frame.Frame) error {
	ddl := s.createTableSQL(name, fr)
	s.logger.Debug("Executing SQL CREATE TABLE", zap.String("sql", ddl))
	if _, err := runner.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	if fr.Len() == 0 || fr.Width() == 0 {
		return nil
	}

	query, params, err := s.insertSQL(name, fr)
	if err != nil {
		return fmt.Errorf("failed to generate INSERT SQL: %w", err)
	}

	s.logger.Debug("Executing SQL INSERT", zap.String("sql", query), zap.Int("params", len(params)))
	if _, err := runner.ExecContext(ctx, query, params...); err != nil {
		s.logger.Error("Failed to execute INSERT query", zap.Error(err), zap.String("sql", query))
		return fmt.Errorf("failed to execute INSERT query: %w", err)
	}
	return nil
}

// Load reads the entire named table into a frame, in the table's natural
// row order. Column kinds are recovered from the table's declared SQLite
// types.
func (s *Store) Load(ctx context.Context, name string) (*frame.Frame, error) {
	kinds, order, err := s.tableKinds(ctx, name)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(order))
	for i, col := range order {
		quoted[i] = quoteIdentifier(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s;", strings.Join(quoted, ", "), s.getTableName(name))
	return s.query(ctx, query, nil, kinds)
}

// Query runs an arbitrary SELECT and scans the results into a frame. Column
// kinds are inferred from the returned values, since a free-form query has
// no table definition to consult.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*frame.Frame, error) {
	return s.query(ctx, query, args, nil)
}

// query executes a SELECT and assembles a frame from the scanned rows,
// converting values per column kind where kinds are known.
func (s *Store) query(ctx context.Context, query string, args []any, kinds map[string]frame.Kind) (*frame.Frame, error) {
	s.logger.Debug("Executing SQL SELECT", zap.String("sql", query), zap.Any("params", args))

	rows, err := s.runner().QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to execute SELECT query", zap.Error(err), zap.String("sql", query))
		return nil, fmt.Errorf("failed to execute SELECT query: %w", err)
	}
	defer rows.Close()

	return readRows(rows, kinds)
}

// tableKinds reads the table's declared column types through PRAGMA
// table_info and maps them back to frame kinds, preserving column order.
func (s *Store) tableKinds(ctx context.Context, name string) (map[string]frame.Kind, []string, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s);", s.getTableName(name))
	s.logger.Debug("Executing SQL PRAGMA", zap.String("sql", query))

	rows, err := s.runner().QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table info for %s: %w", name, err)
	}
	defer rows.Close()

	kinds := make(map[string]frame.Kind)
	var order []string
	for rows.Next() {
		var (
			cid          int
			colName      string
			declaredType string
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &colName, &declaredType, &notNull, &defaultValue, &primaryKey); err != nil {
			return nil, nil, fmt.Errorf("failed to scan table info row: %w", err)
		}
		kinds[colName] = kindFromColumnType(declaredType)
		order = append(order, colName)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error after scanning table info: %w", err)
	}
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("table %s does not exist", name)
	}
	return kinds, order, nil
}

// readRows reads every row from rows and assembles the columns of a frame,
// converting driver values per the known kinds. Columns with no known kind
// fall back to inference from the first non-nil value.
func readRows(rows *sql.Rows, kinds map[string]frame.Kind) (*frame.Frame, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	columnValues := make([][]any, len(columns))
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, col := range columns {
			val := values[i]
			if kind, ok := kinds[col]; ok {
				val = scanValue(kind, val)
			} else if byteVal, isBytes := val.([]byte); isBytes {
				val = string(byteVal)
			}
			columnValues[i] = append(columnValues[i], val)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}

	frameColumns := make([]frame.Column, len(columns))
	for i, col := range columns {
		kind, ok := kinds[col]
		if !ok {
			kind = inferKind(columnValues[i])
		}
		values := columnValues[i]
		if values == nil {
			values = make([]any, 0)
		}
		frameColumns[i] = frame.Column{Name: col, Kind: kind, Values: values}
	}
	return frame.New(frameColumns...)
}

// inferKind picks a column kind from the first non-nil value.
func inferKind(values []any) frame.Kind {
	for _, v := range values {
		if v != nil {
			return frame.KindOf(v)
		}
	}
	return frame.KindAny
}

// Drop removes the named table if it exists.
func (s *Store) Drop(ctx context.Context, name string) error {
	query := fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.getTableName(name))
	s.logger.Debug("Executing SQL DROP TABLE", zap.String("sql", query))
	if _, err := s.runner().ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	return nil
}

// Exists checks whether the named table exists in the database.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name = ?;"

	var found string
	err := s.runner().QueryRowContext(ctx, query, s.options.TablePrefix+name).Scan(&found)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for table %s: %w", name, err)
	}
	return true, nil
}

// Begin starts a transaction and returns a new store scoped to it.
func (s *Store) Begin(ctx context.Context) (*Store, error) {
	if s.tx != nil {
		return nil, fmt.Errorf("cannot start a new transaction from an existing transactional store")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.logger.Debug("Transaction initiated, returning new transactional store")
	return NewStore(s.db, s.logger, s.options, tx), nil
}

// Commit commits the store's transaction.
func (s *Store) Commit() error {
	if s.tx == nil {
		return fmt.Errorf("commit not applicable: not in a transactional context")
	}
	s.logger.Debug("Committing transaction")
	return s.tx.Commit()
}

// Rollback rolls back the store's transaction.
func (s *Store) Rollback() error {
	if s.tx == nil {
		return fmt.Errorf("rollback not applicable: not in a transactional context")
	}
	s.logger.Debug("Rolling back transaction")
	return s.tx.Rollback()
}
