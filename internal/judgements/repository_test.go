package judgements

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeState backs a database/sql connection that records every query and
// keeps a photo_judgements table in memory. INSERT appends a row with the
// next id, a lookup by id returns that row, and any other SELECT returns
// every row in id order. WHERE filters are recorded but not evaluated.
type fakeState struct {
	mu        sync.Mutex
	rows      [][]driver.Value
	lastID    int64
	err       error
	queries   []string
	args      [][]driver.Value
	commits   int
	rollbacks int
}

type fakeConnector struct{ s *fakeState }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) { return fakeConn(c), nil }
func (c fakeConnector) Driver() driver.Driver                       { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use connector") }

type fakeConn struct{ s *fakeState }

func (c fakeConn) Prepare(q string) (driver.Stmt, error) { return fakeStmt{s: c.s, q: q}, nil }
func (c fakeConn) Close() error                          { return nil }
func (c fakeConn) Begin() (driver.Tx, error)             { return fakeTx(c), nil }

type fakeTx struct{ s *fakeState }

func (t fakeTx) Commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.commits++
	return nil
}

func (t fakeTx) Rollback() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.rollbacks++
	return nil
}

type fakeStmt struct {
	s *fakeState
	q string
}

func (st fakeStmt) Close() error  { return nil }
func (st fakeStmt) NumInput() int { return -1 }

func (st fakeStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("exec not supported")
}

func (st fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	st.s.queries = append(st.s.queries, st.q)
	st.s.args = append(st.s.args, args)
	if st.s.err != nil {
		return nil, st.s.err
	}

	switch {
	case strings.Contains(st.q, "INSERT INTO"):
		return &fakeRows{rows: [][]driver.Value{st.s.insert(args)}}, nil
	case strings.HasSuffix(st.q, "WHERE j.id = $1"):
		for _, r := range st.s.rows {
			if r[0] == args[0] {
				return &fakeRows{rows: [][]driver.Value{r}}, nil
			}
		}
		return &fakeRows{}, nil
	}
	return &fakeRows{rows: append([][]driver.Value(nil), st.s.rows...)}, nil
}

// insert must be called with mu held.
func (s *fakeState) insert(args []driver.Value) []driver.Value {
	for _, r := range s.rows {
		if id := r[0].(int64); id > s.lastID {
			s.lastID = id
		}
	}
	s.lastID++
	r := []driver.Value{s.lastID, args[0], args[1], args[2], created, created}
	s.rows = append(s.rows, r)
	return r
}

type fakeRows struct {
	rows [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string {
	return []string{"id", "image_path", "ocr_text", "is_identified", "created_at", "updated_at"}
}

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.i])
	r.i++
	return nil
}

var created = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func row(id int64, path, text string, identified bool) []driver.Value {
	return []driver.Value{id, path, text, identified, created, created}
}

func newTestRepo(t *testing.T, s *fakeState) System {
	t.Helper()
	db := sql.OpenDB(fakeConnector{s})
	t.Cleanup(func() { db.Close() })
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate(t *testing.T) {
	s := &fakeState{}
	sys := newTestRepo(t, s)

	rec, err := sys.Create(context.Background(), NewCommand("photos/a/card.png", "氏名 山田太郎", true))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if rec.ID != 1 || rec.ImagePath != "photos/a/card.png" || !rec.IsIdentified {
		t.Errorf("Create() = %+v", rec)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, created)
	}

	if len(s.queries) != 1 || !strings.Contains(s.queries[0], "INSERT INTO photo_judgements") {
		t.Fatalf("queries = %v, want one INSERT", s.queries)
	}
	args := s.args[0]
	if len(args) != 3 || args[0] != "photos/a/card.png" || args[1] != "氏名 山田太郎" || args[2] != true {
		t.Errorf("insert args = %v", args)
	}
	if s.commits != 1 {
		t.Errorf("commits = %d, want 1", s.commits)
	}
}

func TestCreateThenList(t *testing.T) {
	sys := newTestRepo(t, &fakeState{})
	ctx := context.Background()

	cmds := []CreateCommand{
		NewCommand("photos/a/card.png", "健康保険証 氏名 山田花子", true),
		NewCommand("photos/b/receipt.jpg", "", false),
	}

	var ids []int64
	for _, cmd := range cmds {
		rec, err := sys.Create(ctx, cmd)
		if err != nil {
			t.Fatalf("Create(%+v) error = %v", cmd, err)
		}
		ids = append(ids, rec.ID)
	}

	records, err := sys.List(ctx, Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != len(cmds) {
		t.Fatalf("List() returned %d records, want %d", len(records), len(cmds))
	}

	for i, cmd := range cmds {
		rec := records[i]
		if rec.ID != ids[i] {
			t.Errorf("records[%d].ID = %d, want %d", i, rec.ID, ids[i])
		}
		if rec.ImagePath != cmd.ImagePath || rec.ExtractedText != cmd.ExtractedText || rec.IsIdentified != cmd.IsIdentified {
			t.Errorf("records[%d] = %+v, want fields of %+v", i, rec, cmd)
		}
	}
	if records[0].ID >= records[1].ID {
		t.Errorf("ids %d, %d not in insertion order", records[0].ID, records[1].ID)
	}

	seen := make(map[int64]int)
	for _, rec := range records {
		seen[rec.ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("id %d listed %d times, want once", id, seen[id])
		}
	}
}

func TestCreateFailureRollsBack(t *testing.T) {
	errConn := errors.New("connection reset")
	s := &fakeState{err: errConn}
	sys := newTestRepo(t, s)

	_, err := sys.Create(context.Background(), NewCommand("photos/a/card.png", "", false))
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("error should wrap ErrPersistence, got %v", err)
	}
	if !errors.Is(err, errConn) {
		t.Errorf("error should keep cause, got %v", err)
	}
	if s.commits != 0 || s.rollbacks != 1 {
		t.Errorf("commits = %d, rollbacks = %d, want 0 and 1", s.commits, s.rollbacks)
	}
}

func TestCreateRequiresImagePath(t *testing.T) {
	s := &fakeState{}
	sys := newTestRepo(t, s)

	if _, err := sys.Create(context.Background(), NewCommand("", "氏名", true)); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Create() error = %v, want ErrInvalidCommand", err)
	}
	if len(s.queries) != 0 {
		t.Error("invalid command should not reach the database")
	}
}

func TestList(t *testing.T) {
	s := &fakeState{rows: [][]driver.Value{
		row(1, "photos/a/1.png", "健康保険証", true),
		row(2, "photos/b/2.png", "", false),
	}}
	sys := newTestRepo(t, s)

	records, err := sys.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := "SELECT j.id, j.image_path, j.ocr_text, j.is_identified, j.created_at, j.updated_at " +
		"FROM public.photo_judgements j ORDER BY j.id ASC"
	if s.queries[0] != want {
		t.Errorf("query = %q, want %q", s.queries[0], want)
	}

	if len(records) != 2 || records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("List() = %+v, want ids [1 2]", records)
	}
}

func TestListEmpty(t *testing.T) {
	sys := newTestRepo(t, &fakeState{})

	records, err := sys.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", records)
	}
}

func TestListFilters(t *testing.T) {
	s := &fakeState{}
	sys := newTestRepo(t, s)

	identified := true
	text := "保険"
	if _, err := sys.List(context.Background(), Filters{IsIdentified: &identified, Text: &text}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if !strings.Contains(s.queries[0], "WHERE j.is_identified = $1 AND j.ocr_text ILIKE $2") {
		t.Errorf("query = %q, want identified and text conditions", s.queries[0])
	}
	args := s.args[0]
	if len(args) != 2 || args[0] != true || args[1] != "%保険%" {
		t.Errorf("args = %v, want [true %%保険%%]", args)
	}
}

func TestListFailure(t *testing.T) {
	sys := newTestRepo(t, &fakeState{err: errors.New("relation does not exist")})

	if _, err := sys.List(context.Background(), Filters{}); !errors.Is(err, ErrPersistence) {
		t.Errorf("List() error = %v, want ErrPersistence", err)
	}
}

func TestFind(t *testing.T) {
	s := &fakeState{rows: [][]driver.Value{row(3, "photos/c/3.jpg", "運転免許証", true)}}
	sys := newTestRepo(t, s)

	rec, err := sys.Find(context.Background(), 3)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if rec.ID != 3 || rec.ExtractedText != "運転免許証" {
		t.Errorf("Find() = %+v", rec)
	}
	if !strings.HasSuffix(s.queries[0], "WHERE j.id = $1") {
		t.Errorf("query = %q", s.queries[0])
	}
	if s.args[0][0] != int64(3) {
		t.Errorf("args = %v, want [3]", s.args[0])
	}
}

func TestFindMissing(t *testing.T) {
	sys := newTestRepo(t, &fakeState{})

	if _, err := sys.Find(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}
