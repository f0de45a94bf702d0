package sqlite

import "database/sql"

// schema stores each worksheet as a sparse set of cells.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS worksheets (
    name TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
    worksheet TEXT NOT NULL,
    row_num INTEGER NOT NULL,
    col_num INTEGER NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (worksheet, row_num, col_num),
    FOREIGN KEY (worksheet) REFERENCES worksheets(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cells_worksheet_row ON cells(worksheet, row_num);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
