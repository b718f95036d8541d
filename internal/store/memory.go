package store

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store used by tests. It honours the operator
// subset the application relies on: field equality, _id lookup, $or,
// case-insensitive $regex, $gte/$lte, $elemMatch, plus $set, $push and
// $pull updates.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]bson.M)}
}

// InsertOne stores a document, assigning an ObjectID when absent.
func (s *Memory) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	norm, err := toDoc(doc)
	if err != nil {
		return "", err
	}

	id, ok := norm["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		norm["_id"] = id
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], norm)
	s.mu.Unlock()
	return id.Hex(), nil
}

// FindOne decodes the first matching document into out.
func (s *Memory) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matchFilter(doc, filter) {
			return decodeDoc(doc, out)
		}
	}
	return ErrNotFound
}

// Find decodes all matching documents into out, a pointer to a slice.
func (s *Memory) Find(ctx context.Context, collection string, filter bson.M, out any, opts ...FindOption) error {
	var fo findOptions
	for _, opt := range opts {
		opt(&fo)
	}

	s.mu.RLock()
	var matched []bson.M
	for _, doc := range s.collections[collection] {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if fo.sortKey != "" {
		sortDocs(matched, fo.sortKey, fo.sortDesc)
	}
	if fo.limit > 0 && int64(len(matched)) > fo.limit {
		matched = matched[:fo.limit]
	}

	return decodeDocs(matched, out)
}

// UpdateOne applies the update to the first matching document.
func (s *Memory) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if !matchFilter(doc, filter) {
			continue
		}
		before, err := copyDoc(doc)
		if err != nil {
			return UpdateResult{}, err
		}
		if err := applyUpdate(doc, update); err != nil {
			return UpdateResult{}, err
		}
		res := UpdateResult{Matched: 1}
		if !reflect.DeepEqual(before, doc) {
			res.Modified = 1
		}
		return res, nil
	}
	return UpdateResult{}, nil
}

// DeleteOne removes the first matching document.
func (s *Memory) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matchFilter(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// CollectionNames lists the collections that hold at least one document.
func (s *Memory) CollectionNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Count reports the number of documents matching the filter. Test helper.
func (s *Memory) Count(collection string, filter bson.M) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, doc := range s.collections[collection] {
		if matchFilter(doc, filter) {
			n++
		}
	}
	return n
}

// toDoc normalizes any value through the bson codec so stored documents
// carry bson field names and bson scalar types, as they would on the wire.
func toDoc(v any) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func copyDoc(doc bson.M) (bson.M, error) {
	return toDoc(doc)
}

func normalizeValue(v any) any {
	wrapped, err := toDoc(bson.M{"v": v})
	if err != nil {
		return v
	}
	return wrapped["v"]
}

func decodeDoc(doc bson.M, out any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}

func decodeDocs(docs []bson.M, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return errors.New("out must be a pointer to a slice")
	}

	slice := rv.Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	elemType := slice.Type().Elem()

	for _, doc := range docs {
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}

	slice.Set(result)
	return nil
}

func matchFilter(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchOr(doc, cond) {
				return false
			}
			continue
		}
		if !matchValue(doc[key], cond) {
			return false
		}
	}
	return true
}

func matchOr(doc bson.M, cond any) bool {
	for _, branch := range asFilterList(cond) {
		if matchFilter(doc, branch) {
			return true
		}
	}
	return false
}

func asFilterList(cond any) []bson.M {
	switch list := cond.(type) {
	case []bson.M:
		return list
	case bson.A:
		out := make([]bson.M, 0, len(list))
		for _, item := range list {
			if m, ok := item.(bson.M); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func matchValue(val any, cond any) bool {
	ops, ok := cond.(bson.M)
	if !ok {
		return equalValues(val, cond)
	}

	if !hasOperator(ops) {
		// Plain document equality (e.g. $pull element filters).
		elem, ok := val.(bson.M)
		if !ok {
			return false
		}
		return matchFilter(elem, ops)
	}

	for op, arg := range ops {
		switch op {
		case "$options":
			// Consumed alongside $regex.
		case "$regex":
			if !matchRegex(val, ops) {
				return false
			}
		case "$gte":
			v, ok1 := toFloat(val)
			bound, ok2 := toFloat(arg)
			if !ok1 || !ok2 || v < bound {
				return false
			}
		case "$lte":
			v, ok1 := toFloat(val)
			bound, ok2 := toFloat(arg)
			if !ok1 || !ok2 || v > bound {
				return false
			}
		case "$elemMatch":
			if !matchElem(val, arg) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func hasOperator(m bson.M) bool {
	for key := range m {
		if len(key) > 0 && key[0] == '$' {
			return true
		}
	}
	return false
}

func matchRegex(val any, ops bson.M) bool {
	str, ok := val.(string)
	if !ok {
		return false
	}
	pattern, ok := ops["$regex"].(string)
	if !ok {
		return false
	}
	if opts, _ := ops["$options"].(string); opts == "i" {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(str)
}

func matchElem(val any, cond any) bool {
	arr, ok := val.(bson.A)
	if !ok {
		return false
	}
	for _, elem := range arr {
		if matchValue(elem, cond) {
			return true
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}

	if aid, ok := a.(primitive.ObjectID); ok {
		bid, ok := b.(primitive.ObjectID)
		return ok && aid == bid
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.IsValid() && bv.IsValid() && av.Kind() == reflect.String && bv.Kind() == reflect.String {
		return av.String() == bv.String()
	}

	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}

func applyUpdate(doc bson.M, update bson.M) error {
	for op, arg := range update {
		fields, ok := arg.(bson.M)
		if !ok {
			return errors.New("update operator argument must be a document")
		}
		switch op {
		case "$set":
			for field, value := range fields {
				doc[field] = normalizeValue(value)
			}
		case "$push":
			for field, value := range fields {
				arr, _ := doc[field].(bson.A)
				doc[field] = append(arr, normalizeValue(value))
			}
		case "$pull":
			for field, cond := range fields {
				arr, _ := doc[field].(bson.A)
				kept := make(bson.A, 0, len(arr))
				for _, elem := range arr {
					if !matchValue(elem, normalizeValue(cond)) {
						kept = append(kept, elem)
					}
				}
				doc[field] = kept
			}
		default:
			return errors.New("unsupported update operator " + op)
		}
	}
	return nil
}

func sortDocs(docs []bson.M, key string, desc bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		less := lessValues(docs[i][key], docs[j][key])
		if desc {
			return lessValues(docs[j][key], docs[i][key])
		}
		return less
	})
}

func lessValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af < bf
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}
