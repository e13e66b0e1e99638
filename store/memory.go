// path: store/memory.go
package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Repository. Documents are held as encoded BSON
// so filters, sorts and decoding behave as they do against MongoDB
// (including millisecond time precision).
type Memory struct {
	species      *memCollection[models.Species]
	methods      *memCollection[models.MonitoringMethod]
	locations    *memCollection[models.Location]
	observations *memCollection[models.MonitoringData]
	users        *memCollection[models.User]
}

var _ Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		species:      newMemCollection[models.Species](SpeciesCollection, "scientificName"),
		methods:      newMemCollection[models.MonitoringMethod](MethodsCollection),
		locations:    newMemCollection[models.Location](LocationsCollection),
		observations: newMemCollection[models.MonitoringData](ObservationsCollection),
		users:        newMemCollection[models.User](UsersCollection, "clerkId", "email"),
	}
}

func (m *Memory) Species() Collection[models.Species]             { return m.species }
func (m *Memory) Methods() Collection[models.MonitoringMethod]    { return m.methods }
func (m *Memory) Locations() Collection[models.Location]          { return m.locations }
func (m *Memory) Observations() Collection[models.MonitoringData] { return m.observations }
func (m *Memory) Users() Collection[models.User]                  { return m.users }
func (m *Memory) Ping(ctx context.Context) error                  { return ctx.Err() }
func (m *Memory) Close(context.Context) error                     { return nil }

type memEntry struct {
	id  primitive.ObjectID
	raw bson.Raw
}

type memCollection[T any] struct {
	mu     sync.RWMutex
	name   string
	unique []string
	docs   []memEntry
}

func newMemCollection[T any](name string, unique ...string) *memCollection[T] {
	return &memCollection[T]{name: name, unique: unique}
}

func (c *memCollection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	matched, err := c.match(q.Filter)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if len(q.Sort) > 0 {
		sortRaw(matched, q.Sort)
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]T, 0, len(matched))
	for _, raw := range matched {
		var doc T
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", c.name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *memCollection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	docs, err := c.Find(ctx, Query{Filter: filter, Limit: 1})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return &docs[0], nil
}

func (c *memCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

func (c *memCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	matched, err := c.match(filter)
	return int64(len(matched)), err
}

func (c *memCollection[T]) Insert(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, id, err := c.encode(doc)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) >= 0 {
		return &DuplicateError{Collection: c.name, Field: "_id"}
	}
	if err := c.checkUnique(raw, id); err != nil {
		return err
	}
	c.docs = append(c.docs, memEntry{id: id, raw: raw})
	return nil
}

func (c *memCollection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, docID, err := c.encode(doc)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if docID != id {
		return fmt.Errorf("%s: replace: document id %s does not match %s", c.name, docID.Hex(), id.Hex())
	}
	if err := c.checkUnique(raw, id); err != nil {
		return err
	}
	c.docs[i].raw = raw
	return nil
}

func (c *memCollection[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	var current bson.D
	if err := bson.Unmarshal(c.docs[i].raw, &current); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}
	for key, value := range set {
		if key == "_id" || strings.Contains(key, ".") {
			return nil, fmt.Errorf("%s: update: unsupported field %q", c.name, key)
		}
		replaced := false
		for j := range current {
			if current[j].Key == key {
				current[j].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			current = append(current, bson.E{Key: key, Value: value})
		}
	}
	raw, err := bson.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", c.name, err)
	}
	if err := c.checkUnique(raw, id); err != nil {
		return nil, err
	}
	c.docs[i].raw = raw

	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}
	return &doc, nil
}

func (c *memCollection[T]) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return true, nil
}

func (c *memCollection[T]) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.docs = nil
	c.mu.Unlock()
	return nil
}

func (c *memCollection[T]) GroupCount(ctx context.Context, field string) ([]GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := map[string]int64{}
	var keys []string
	for _, e := range c.docs {
		key := rawKey(e.raw.Lookup(strings.Split(field, ".")...))
		if _, seen := counts[key]; !seen {
			keys = append(keys, key)
		}
		counts[key]++
	}
	out := make([]GroupCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, GroupCount{Key: k, Count: counts[k]})
	}
	return out, nil
}

func (c *memCollection[T]) MonthlyCount(ctx context.Context, field string, since time.Time) ([]MonthCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	type ym struct{ y, m int }
	counts := map[ym]int64{}
	var keys []ym
	for _, e := range c.docs {
		ms, ok := e.raw.Lookup(strings.Split(field, ".")...).DateTimeOK()
		if !ok {
			continue
		}
		t := time.UnixMilli(ms).UTC()
		if t.Before(since) {
			continue
		}
		k := ym{t.Year(), int(t.Month())}
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
	}
	out := make([]MonthCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthCount{Year: k.y, Month: k.m, Count: counts[k]})
	}
	return out, nil
}

// --- internal ---

func (c *memCollection[T]) encode(doc *T) (bson.Raw, primitive.ObjectID, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("%s: encode: %w", c.name, err)
	}
	id, ok := bson.Raw(raw).Lookup("_id").ObjectIDOK()
	if !ok || id.IsZero() {
		return nil, primitive.NilObjectID, fmt.Errorf("%s: document has no _id", c.name)
	}
	return raw, id, nil
}

func (c *memCollection[T]) indexOf(id primitive.ObjectID) int {
	for i, e := range c.docs {
		if e.id == id {
			return i
		}
	}
	return -1
}

// checkUnique must be called with the lock held.
func (c *memCollection[T]) checkUnique(raw bson.Raw, self primitive.ObjectID) error {
	for _, field := range c.unique {
		v := raw.Lookup(field)
		for _, e := range c.docs {
			if e.id == self {
				continue
			}
			if equalRaw(e.raw.Lookup(field), v) {
				return &DuplicateError{Collection: c.name, Field: field}
			}
		}
	}
	return nil
}

// match must be called with the lock held. It returns the matching
// documents in insertion order.
func (c *memCollection[T]) match(filter bson.M) ([]bson.Raw, error) {
	out := make([]bson.Raw, 0, len(c.docs))
	for _, e := range c.docs {
		ok, err := matches(e.raw, filter)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		if ok {
			out = append(out, e.raw)
		}
	}
	return out, nil
}

func matches(raw bson.Raw, filter bson.M) (bool, error) {
	for key, cond := range filter {
		val := raw.Lookup(strings.Split(key, ".")...)
		ops, isOps := operators(cond)
		if !isOps {
			want, err := toRaw(cond)
			if err != nil {
				return false, err
			}
			if !equalRaw(val, want) {
				return false, nil
			}
			continue
		}
		for op, arg := range ops {
			ok, err := evalOp(val, op, arg)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func operators(cond any) (bson.M, bool) {
	m, ok := cond.(bson.M)
	if !ok {
		if plain, isMap := cond.(map[string]any); isMap {
			m, ok = bson.M(plain), true
		}
	}
	if !ok || len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func evalOp(val bson.RawValue, op string, arg any) (bool, error) {
	if op == "$in" {
		list, ok := arg.([]any)
		if !ok {
			if a, isA := arg.(bson.A); isA {
				list, ok = []any(a), true
			}
		}
		if !ok {
			return false, fmt.Errorf("$in expects an array, got %T", arg)
		}
		for _, item := range list {
			want, err := toRaw(item)
			if err != nil {
				return false, err
			}
			if equalRaw(val, want) {
				return true, nil
			}
		}
		return false, nil
	}

	want, err := toRaw(arg)
	if err != nil {
		return false, err
	}
	switch op {
	case "$eq":
		return equalRaw(val, want), nil
	case "$ne":
		return !equalRaw(val, want), nil
	}
	cmp, ok := compareRaw(val, want)
	if !ok {
		return false, nil
	}
	switch op {
	case "$gt":
		return cmp > 0, nil
	case "$gte":
		return cmp >= 0, nil
	case "$lt":
		return cmp < 0, nil
	case "$lte":
		return cmp <= 0, nil
	}
	return false, fmt.Errorf("unsupported operator %s", op)
}

func toRaw(v any) (bson.RawValue, error) {
	t, data, err := bson.MarshalValue(v)
	if err != nil {
		return bson.RawValue{}, fmt.Errorf("encode filter value %v: %w", v, err)
	}
	return bson.RawValue{Type: t, Value: data}, nil
}

func isNullish(v bson.RawValue) bool {
	return v.Type == 0 || v.Type == bsontype.Null || v.Type == bsontype.Undefined
}

func equalRaw(a, b bson.RawValue) bool {
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	if c, ok := compareRaw(a, b); ok {
		return c == 0
	}
	return a.Type == b.Type && bytes.Equal(a.Value, b.Value)
}

// compareRaw orders two values of compatible types. ok is false when the
// types cannot be compared.
func compareRaw(a, b bson.RawValue) (int, bool) {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return cmp3(fa < fb, fa > fb), true
		}
		return 0, false
	}
	switch a.Type {
	case bsontype.String:
		sb, ok := b.StringValueOK()
		if !ok {
			return 0, false
		}
		return strings.Compare(a.StringValue(), sb), true
	case bsontype.DateTime:
		tb, ok := b.DateTimeOK()
		if !ok {
			return 0, false
		}
		ta := a.DateTime()
		return cmp3(ta < tb, ta > tb), true
	case bsontype.ObjectID:
		ob, ok := b.ObjectIDOK()
		if !ok {
			return 0, false
		}
		oa := a.ObjectID()
		return bytes.Compare(oa[:], ob[:]), true
	case bsontype.Boolean:
		bb, ok := b.BooleanOK()
		if !ok {
			return 0, false
		}
		ba := a.Boolean()
		return cmp3(!ba && bb, ba && !bb), true
	}
	return 0, false
}

func asFloat(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Double:
		return v.Double(), true
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	}
	return 0, false
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// sortRaw orders documents by the given keys; missing values sort first
// in ascending order, as in MongoDB.
func sortRaw(docs []bson.Raw, keys bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			path := strings.Split(k.Key, ".")
			a, b := docs[i].Lookup(path...), docs[j].Lookup(path...)
			var c int
			switch {
			case isNullish(a) && isNullish(b):
				c = 0
			case isNullish(a):
				c = -1
			case isNullish(b):
				c = 1
			default:
				c, _ = compareRaw(a, b)
			}
			if direction(k.Value) < 0 {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func direction(v any) int {
	switch d := v.(type) {
	case int:
		return d
	case int32:
		return int(d)
	case int64:
		return int(d)
	case float64:
		return int(d)
	}
	return 1
}

func rawKey(v bson.RawValue) string {
	if isNullish(v) {
		return ""
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return v.String()
}

var _ Collection[models.Species] = (*memCollection[models.Species])(nil)
