package linkedin

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS upload_outcomes (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	patent_number TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	outcome       TEXT NOT NULL,
	recorded_at   TEXT NOT NULL
);
`

// Journal persists per-record upload outcomes to SQLite so a batch can be
// audited after the fact. The discovery pipeline itself stays stateless;
// only the upload collaborator writes here.
type Journal struct {
	db *sqlx.DB
}

func OpenJournal(path string) (*Journal, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Record(number, title string, outcome Outcome) error {
	_, err := j.db.Exec(`INSERT INTO upload_outcomes (patent_number, title, outcome, recorded_at) VALUES (?, ?, ?, ?)`,
		number, title, string(outcome), time.Now().UTC().Format(time.RFC3339))
	return err
}

type JournalEntry struct {
	ID         int64  `db:"id"`
	Number     string `db:"patent_number"`
	Title      string `db:"title"`
	Outcome    string `db:"outcome"`
	RecordedAt string `db:"recorded_at"`
}

// Entries returns all recorded outcomes, oldest first.
func (j *Journal) Entries() ([]JournalEntry, error) {
	var out []JournalEntry
	if err := j.db.Select(&out, `SELECT id, patent_number, title, outcome, recorded_at FROM upload_outcomes ORDER BY id`); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
