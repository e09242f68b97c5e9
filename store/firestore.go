// file: store/firestore.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"mentora-hub/logger"
)

const datastoreScope = "https://www.googleapis.com/auth/datastore"

// listPageSize bounds each page fetched while scanning a collection.
const listPageSize = 300

// Firestore talks to Cloud Firestore through its REST API. Writes go through
// the generated client; reads decode the raw response so that typed zero
// values survive.
type Firestore struct {
	docs     *firestore.ProjectsDatabasesDocumentsService
	client   *http.Client
	basePath string
	database string
}

// NewFirestore connects with a service-account JSON key. projectID may be
// empty when the key carries one.
func NewFirestore(ctx context.Context, projectID string, credentialsJSON []byte) (*Firestore, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, datastoreScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse firestore credentials: %w", err)
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, errors.New("firestore project id is not set")
	}
	return NewFirestoreWithClient(ctx, projectID, oauth2.NewClient(ctx, creds.TokenSource))
}

// NewFirestoreWithClient builds the accessor over an authorised HTTP client.
// opts may override the endpoint.
func NewFirestoreWithClient(ctx context.Context, projectID string, client *http.Client, opts ...option.ClientOption) (*Firestore, error) {
	opts = append(opts, option.WithHTTPClient(client))
	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore service: %w", err)
	}
	basePath := svc.BasePath
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	logger.Info.Printf("[NewFirestore] connected to project %s", projectID)
	return &Firestore{
		docs:     svc.Projects.Databases.Documents,
		client:   client,
		basePath: basePath,
		database: fmt.Sprintf("projects/%s/databases/(default)", projectID),
	}, nil
}

func (f *Firestore) root() string {
	return f.database + "/documents"
}

func (f *Firestore) docName(collection, id string) string {
	return fmt.Sprintf("%s/%s/%s", f.root(), collection, id)
}

// Add writes a new document under a generated id.
func (f *Firestore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	id := uuid.NewString()
	if err := validName(collection, id); err != nil {
		return "", err
	}
	write, err := f.buildWrite(collection, id, fields, false)
	if err != nil {
		return "", err
	}
	if err := f.commit(ctx, write); err != nil {
		return "", fmt.Errorf("firestore add %s: %w", collection, err)
	}
	return id, nil
}

// Set creates or replaces a document.
func (f *Firestore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := validName(collection, id); err != nil {
		return err
	}
	write, err := f.buildWrite(collection, id, fields, false)
	if err != nil {
		return err
	}
	if err := f.commit(ctx, write); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update patches the named fields of an existing document.
func (f *Firestore) Update(ctx context.Context, collection, id string, patch map[string]interface{}) error {
	if err := validName(collection, id); err != nil {
		return err
	}
	write, err := f.buildWrite(collection, id, patch, true)
	if err != nil {
		return err
	}
	if err := f.commit(ctx, write); err != nil {
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get reads one document.
func (f *Firestore) Get(ctx context.Context, collection, id string) (Record, error) {
	if err := validName(collection, id); err != nil {
		return Record{}, err
	}
	var doc wireDocument
	if err := f.getJSON(ctx, f.docName(collection, id), nil, &doc); err != nil {
		return Record{}, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return doc.record(), nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	if err := validName(collection, id); err != nil {
		return err
	}
	if _, err := f.docs.Delete(f.docName(collection, id)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, translate(err))
	}
	return nil
}

// Query lists the collection in server order, applying equality filters as
// pages arrive and stopping once Limit matches are collected.
func (f *Firestore) Query(ctx context.Context, collection string, q Query) ([]Record, error) {
	params := url.Values{"pageSize": {strconv.Itoa(listPageSize)}}
	if q.OrderBy != "" {
		order := q.OrderBy
		if q.Descending {
			order += " desc"
		}
		params.Set("orderBy", order)
	}

	var out []Record
	for {
		var page wireListResponse
		if err := f.getJSON(ctx, f.root()+"/"+collection, params, &page); err != nil {
			return nil, fmt.Errorf("firestore query %s: %w", collection, err)
		}
		for _, doc := range page.Documents {
			rec := doc.record()
			if !matches(rec.Fields, q.Where) {
				continue
			}
			out = append(out, rec)
			if q.Limit > 0 && len(out) >= q.Limit {
				return out, nil
			}
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		params.Set("pageToken", page.NextPageToken)
	}
}

// getJSON issues a v1 GET for a resource path and decodes the body.
func (f *Firestore) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := f.basePath + "v1/" + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	res, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer googleapi.CloseBody(res)
	if err := googleapi.CheckResponse(res); err != nil {
		return translate(err)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (f *Firestore) commit(ctx context.Context, write *firestore.Write) error {
	req := &firestore.CommitRequest{Writes: []*firestore.Write{write}}
	if _, err := f.docs.Commit(f.database, req).Context(ctx).Do(); err != nil {
		return translate(err)
	}
	return nil
}

// buildWrite turns fields into a single-document write. ServerTimestamp
// values become REQUEST_TIME transforms. A patch write is masked to its own
// fields and requires the document to exist.
func (f *Firestore) buildWrite(collection, id string, fields map[string]interface{}, patch bool) (*firestore.Write, error) {
	plain := make(map[string]interface{}, len(fields))
	var transforms []*firestore.FieldTransform
	for k, v := range fields {
		if IsServerTimestamp(v) {
			transforms = append(transforms, &firestore.FieldTransform{FieldPath: k, SetToServerValue: "REQUEST_TIME"})
			continue
		}
		plain[k] = v
	}
	sort.Slice(transforms, func(i, j int) bool { return transforms[i].FieldPath < transforms[j].FieldPath })

	doc, err := encodeDocument(f.docName(collection, id), plain)
	if err != nil {
		return nil, err
	}
	write := &firestore.Write{Update: doc, UpdateTransforms: transforms}
	if patch {
		paths := make([]string, 0, len(doc.Fields))
		for k := range doc.Fields {
			paths = append(paths, k)
		}
		sort.Strings(paths)
		write.UpdateMask = &firestore.DocumentMask{FieldPaths: paths}
		write.CurrentDocument = &firestore.Precondition{Exists: true}
	}
	return write, nil
}

func translate(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

// ------------------- value encoding -------------------

// wireValue mirrors the Firestore REST Value JSON for reads. Pointer members
// keep false, 0 and "" apart from an absent member.
type wireValue struct {
	NullValue      *string    `json:"nullValue,omitempty"`
	BooleanValue   *bool      `json:"booleanValue,omitempty"`
	IntegerValue   *string    `json:"integerValue,omitempty"`
	DoubleValue    *float64   `json:"doubleValue,omitempty"`
	TimestampValue *string    `json:"timestampValue,omitempty"`
	StringValue    *string    `json:"stringValue,omitempty"`
	ArrayValue     *wireArray `json:"arrayValue,omitempty"`
	MapValue       *wireMap   `json:"mapValue,omitempty"`
}

type wireArray struct {
	Values []wireValue `json:"values,omitempty"`
}

type wireMap struct {
	Fields map[string]wireValue `json:"fields,omitempty"`
}

type wireDocument struct {
	Name   string               `json:"name"`
	Fields map[string]wireValue `json:"fields"`
}

type wireListResponse struct {
	Documents     []wireDocument `json:"documents"`
	NextPageToken string         `json:"nextPageToken"`
}

func (d wireDocument) record() Record {
	fields := make(map[string]interface{}, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = fromWire(v)
	}
	return Record{ID: lastSegment(d.Name), Fields: fields}
}

func encodeDocument(name string, fields map[string]interface{}) (*firestore.Document, error) {
	doc := &firestore.Document{Name: name, Fields: make(map[string]firestore.Value, len(fields))}
	for k, v := range fields {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		doc.Fields[k] = *val
	}
	return doc, nil
}

// toValue builds the REST value. ForceSendFields keeps false, 0 and ""
// on the wire; the generated types would otherwise omit them.
func toValue(v interface{}) (*firestore.Value, error) {
	switch x := v.(type) {
	case nil:
		return &firestore.Value{NullValue: "NULL_VALUE"}, nil
	case bool:
		return &firestore.Value{BooleanValue: x, ForceSendFields: []string{"BooleanValue"}}, nil
	case string:
		return &firestore.Value{StringValue: x, ForceSendFields: []string{"StringValue"}}, nil
	case int:
		return &firestore.Value{IntegerValue: int64(x), ForceSendFields: []string{"IntegerValue"}}, nil
	case int64:
		return &firestore.Value{IntegerValue: x, ForceSendFields: []string{"IntegerValue"}}, nil
	case float64:
		return &firestore.Value{DoubleValue: x, ForceSendFields: []string{"DoubleValue"}}, nil
	case time.Time:
		return &firestore.Value{TimestampValue: x.UTC().Format(time.RFC3339Nano)}, nil
	case []string:
		arr := &firestore.ArrayValue{}
		for _, s := range x {
			val, _ := toValue(s)
			arr.Values = append(arr.Values, val)
		}
		return &firestore.Value{ArrayValue: arr}, nil
	case []interface{}:
		arr := &firestore.ArrayValue{}
		for _, item := range x {
			val, err := toValue(item)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, val)
		}
		return &firestore.Value{ArrayValue: arr}, nil
	case map[string]interface{}:
		m := &firestore.MapValue{Fields: make(map[string]firestore.Value, len(x))}
		for k, item := range x {
			val, err := toValue(item)
			if err != nil {
				return nil, err
			}
			m.Fields[k] = *val
		}
		return &firestore.Value{MapValue: m}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromWire(v wireValue) interface{} {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.TimestampValue != nil:
		t, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
		if err != nil {
			return *v.TimestampValue
		}
		return t
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return *v.IntegerValue
		}
		return n
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.ArrayValue != nil:
		out := make([]interface{}, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			out = append(out, fromWire(item))
		}
		return out
	case v.MapValue != nil:
		out := make(map[string]interface{}, len(v.MapValue.Fields))
		for k, item := range v.MapValue.Fields {
			out[k] = fromWire(item)
		}
		return out
	default:
		return nil
	}
}

func lastSegment(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
