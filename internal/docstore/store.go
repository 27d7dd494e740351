package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store = (*store)(nil)

// querier is the subset of *sql.DB and *sql.Tx used to read and write documents.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type subscription struct {
	segs []string
	fn   func(Snapshot)
}

type store struct {
	db *sql.DB
	// mu serializes transactions so read-modify-write cycles never interleave.
	mu sync.Mutex

	subMu  sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
}

// New creates a document store backed by the documents table in db.
func New(db *sql.DB) Store {
	return &store{
		db:   db,
		subs: make(map[uint64]*subscription),
	}
}

func (s *store) Get(ctx context.Context, path string) (Snapshot, error) {
	return get(ctx, s.db, path)
}

func (s *store) List(ctx context.Context, collection string) ([]Snapshot, error) {
	return list(ctx, s.db, collection)
}

func (s *store) Set(ctx context.Context, path string, value any) error {
	return s.RunTransaction(ctx, func(tx Tx) error {
		return tx.Set(path, value)
	})
}

func (s *store) Update(ctx context.Context, path string, fields map[string]any) error {
	return s.RunTransaction(ctx, func(tx Tx) error {
		return tx.Update(path, fields)
	})
}

func (s *store) Delete(ctx context.Context, path string) error {
	return s.RunTransaction(ctx, func(tx Tx) error {
		return tx.Delete(path)
	})
}

func (s *store) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	changed, err := s.commit(ctx, fn)
	if err != nil {
		return err
	}
	// Subscribers run outside the lock so they may read or write the store.
	s.notify(changed)
	return nil
}

// commit runs fn in a SQL transaction while holding s.mu. The transaction is
// rolled back and the lock released even when fn panics.
func (s *store) commit(ctx context.Context, fn func(tx Tx) error) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.Error("Failed to roll back transaction", "error", rbErr)
		}
	}()

	t := &txn{ctx: ctx, q: sqlTx, changed: make(map[string][]string)}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return t.changed, nil
}

func (s *store) Subscribe(path string, fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = &subscription{segs: splitPath(path), fn: fn}
	s.subMu.Unlock()

	snap, err := s.Get(context.Background(), path)
	if err != nil {
		log.Error("Failed to read initial snapshot for subscriber", "path", path, "error", err)
	} else {
		fn(snap)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// notify pushes a fresh snapshot to every subscriber whose path overlaps a changed document.
func (s *store) notify(changed map[string][]string) {
	if len(changed) == 0 {
		return
	}
	s.subMu.RLock()
	targets := make([]*subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		for _, segs := range changed {
			if related(sub.segs, segs) {
				targets = append(targets, sub)
				break
			}
		}
	}
	s.subMu.RUnlock()

	for _, sub := range targets {
		path := strings.Join(sub.segs, "/")
		snap, err := s.Get(context.Background(), path)
		if err != nil {
			log.Error("Failed to read snapshot for subscriber", "path", path, "error", err)
			continue
		}
		sub.fn(snap)
	}
}

type txn struct {
	ctx     context.Context
	q       querier
	changed map[string][]string
}

func (t *txn) Get(path string) (Snapshot, error) {
	return get(t.ctx, t.q, path)
}

func (t *txn) List(collection string) ([]Snapshot, error) {
	return list(t.ctx, t.q, collection)
}

func (t *txn) Set(path string, value any) error {
	collection, id, field, err := parsePath(path)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: cannot set a whole collection", ErrInvalidPath)
	}
	v, err := normalize(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if len(field) == 0 {
		if v == nil {
			return t.Delete(path)
		}
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("%w: document %s must be an object", ErrInvalidPath, path)
		}
		return t.write(collection, id, v.(map[string]any))
	}
	doc, _, err := t.read(collection, id)
	if err != nil {
		return err
	}
	return t.write(collection, id, setIn(doc, field, v).(map[string]any))
}

func (t *txn) Update(path string, fields map[string]any) error {
	collection, id, field, err := parsePath(path)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: cannot update a whole collection", ErrInvalidPath)
	}
	doc, _, err := t.read(collection, id)
	if err != nil {
		return err
	}
	// Apply keys in a fixed order so overlapping paths resolve deterministically.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var node any = doc
	for _, k := range keys {
		v, err := normalize(fields[k])
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", path, k, err)
		}
		target := append(append([]string{}, field...), splitPath(k)...)
		if len(target) == 0 {
			return fmt.Errorf("%w: empty field key in update of %s", ErrInvalidPath, path)
		}
		node = setIn(node, target, v)
	}
	return t.write(collection, id, node.(map[string]any))
}

func (t *txn) Delete(path string) error {
	collection, id, field, err := parsePath(path)
	if err != nil {
		return err
	}
	if id == "" {
		if _, err := t.q.ExecContext(t.ctx, `DELETE FROM documents WHERE collection = ?`, collection); err != nil {
			return fmt.Errorf("delete collection %s: %w", collection, err)
		}
		t.changed[collection] = []string{collection}
		return nil
	}
	if len(field) == 0 {
		if _, err := t.q.ExecContext(t.ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
			return fmt.Errorf("delete %s: %w", path, err)
		}
		t.changed[collection+"/"+id] = []string{collection, id}
		return nil
	}
	doc, exists, err := t.read(collection, id)
	if err != nil || !exists {
		return err
	}
	return t.write(collection, id, setIn(doc, field, nil).(map[string]any))
}

// read loads a document body, returning an empty object when it does not exist.
func (t *txn) read(collection, id string) (map[string]any, bool, error) {
	v, exists, err := readDoc(t.ctx, t.q, collection, id)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return map[string]any{}, false, nil
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, true, nil
	}
	return doc, true, nil
}

func (t *txn) write(collection, id string, doc map[string]any) error {
	body, err := msgpack.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	_, err = t.q.ExecContext(t.ctx, `
		INSERT INTO documents (collection, id, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		collection, id, body, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", collection, id, err)
	}
	t.changed[collection+"/"+id] = []string{collection, id}
	return nil
}

func readDoc(ctx context.Context, q querier, collection, id string) (any, bool, error) {
	var body []byte
	err := q.QueryRowContext(ctx, `SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s/%s: %w", collection, id, err)
	}
	var v any
	if err := msgpack.Unmarshal(body, &v); err != nil {
		return nil, false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return v, true, nil
}

func get(ctx context.Context, q querier, path string) (Snapshot, error) {
	collection, id, field, err := parsePath(path)
	if err != nil {
		return Snapshot{}, err
	}
	if id == "" {
		docs, err := list(ctx, q, collection)
		if err != nil {
			return Snapshot{}, err
		}
		m := make(map[string]any, len(docs))
		for _, d := range docs {
			m[d.ID()] = d.value
		}
		return Snapshot{Path: collection, value: m, exists: len(m) > 0}, nil
	}
	doc, exists, err := readDoc(ctx, q, collection, id)
	if err != nil || !exists {
		return Snapshot{Path: strings.Trim(path, "/")}, err
	}
	v, ok := getIn(doc, field)
	return Snapshot{Path: strings.Trim(path, "/"), value: v, exists: ok}, nil
}

func list(ctx context.Context, q querier, collection string) ([]Snapshot, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, body FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		var v any
		if err := msgpack.Unmarshal(body, &v); err != nil {
			log.Error("Skipping undecodable document", "collection", collection, "id", id, "error", err)
			continue
		}
		snaps = append(snaps, Snapshot{Path: collection + "/" + id, value: v, exists: true})
	}
	return snaps, rows.Err()
}
