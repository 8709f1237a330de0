package history

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	eta         REAL    NOT NULL,
	epochs      INTEGER NOT NULL,
	started_at  TEXT    NOT NULL,
	finished_at TEXT,
	weights     TEXT
);
CREATE TABLE IF NOT EXISTS epochs (
	run_id  INTEGER NOT NULL REFERENCES runs(id),
	epoch   INTEGER NOT NULL,
	loss    REAL    NOT NULL,
	weights TEXT    NOT NULL,
	PRIMARY KEY (run_id, epoch)
);`

// Run is one recorded Fit call.
type Run struct {
	ID         int64
	Name       string
	Eta        float64
	Epochs     int
	StartedAt  time.Time
	FinishedAt time.Time // zero if the fit never finished
	Weights    []float64 // final augmented weights, bias last
}

// Store keeps training runs and their epoch losses in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open history database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create history schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Recorder returns a callback storing every Fit of a perceptron as a run named name.
func (s *Store) Recorder(name string) *SQLiteRecorder {
	return &SQLiteRecorder{store: s, name: name}
}

// Runs lists recorded runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, name, eta, epochs, started_at, finished_at, weights FROM runs ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
			weights  sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Eta, &r.Epochs, &started, &finished, &weights); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, errors.Wrap(err, "parse started_at")
		}
		if finished.Valid {
			if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished.String); err != nil {
				return nil, errors.Wrap(err, "parse finished_at")
			}
		}
		if weights.Valid {
			if err := json.Unmarshal([]byte(weights.String), &r.Weights); err != nil {
				return nil, errors.Wrap(err, "decode weights")
			}
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// Losses returns the per-epoch losses of a run in epoch order.
func (s *Store) Losses(runID int64) ([]float64, error) {
	rows, err := s.db.Query(`SELECT loss FROM epochs WHERE run_id = ? ORDER BY epoch`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query losses")
	}
	defer rows.Close()

	losses := []float64{}
	for rows.Next() {
		var l float64
		if err := rows.Scan(&l); err != nil {
			return nil, errors.Wrap(err, "scan loss")
		}
		losses = append(losses, l)
	}
	return losses, errors.Wrap(rows.Err(), "iterate losses")
}

// SQLiteRecorder is the training callback returned by Store.Recorder.
type SQLiteRecorder struct {
	perceptron.BaseCallback
	store *Store
	name  string
	runID int64
	err   error
}

func encodeWeights(w []float64) string {
	b, _ := json.Marshal(w)
	return string(b)
}

func (r *SQLiteRecorder) OnTrainBegin(p *perceptron.Perceptron) {
	res, err := r.store.db.Exec(
		`INSERT INTO runs (name, eta, epochs, started_at) VALUES (?, ?, ?, ?)`,
		r.name, p.Eta(), p.Epochs(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		r.fail(errors.Wrap(err, "insert run"))
		return
	}
	r.runID, err = res.LastInsertId()
	r.fail(errors.Wrap(err, "run id"))
}

func (r *SQLiteRecorder) OnEpochEnd(epoch int, loss float64, p *perceptron.Perceptron) {
	if r.runID == 0 {
		return
	}
	_, err := r.store.db.Exec(
		`INSERT INTO epochs (run_id, epoch, loss, weights) VALUES (?, ?, ?, ?)`,
		r.runID, epoch, loss, encodeWeights(p.Params()))
	r.fail(errors.Wrapf(err, "insert epoch %d", epoch))
}

func (r *SQLiteRecorder) OnTrainEnd(p *perceptron.Perceptron) {
	if r.runID == 0 {
		return
	}
	_, err := r.store.db.Exec(
		`UPDATE runs SET finished_at = ?, weights = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), encodeWeights(p.Params()), r.runID)
	r.fail(errors.Wrap(err, "finish run"))
	r.runID = 0
}

// RunID returns the id of the run being recorded, or 0 outside a Fit.
func (r *SQLiteRecorder) RunID() int64 {
	return r.runID
}

// Err returns the first error met while recording.
func (r *SQLiteRecorder) Err() error {
	return r.err
}

func (r *SQLiteRecorder) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}
