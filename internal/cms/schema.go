// Package cms describes each entity's fields for the generic admin console.
// The console renders list columns and edit forms from these descriptors; the
// key field is always first.
package cms

import (
	"sort"

	"github.com/iliyamo/cheapies/internal/model"
)

type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInt      FieldType = "int"
	TypeFloat    FieldType = "float"
	TypeDatetime FieldType = "datetime"
	TypeImageURL FieldType = "image-url"
	TypeEnum     FieldType = "enum"
)

// Field describes one column of an entity.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Type        FieldType `json:"type"`
	IsFile      bool      `json:"isFile,omitempty"`
	IsReadOnly  bool      `json:"isReadOnly,omitempty"`
	IsOptional  bool      `json:"isOptional,omitempty"`
	EnumOptions []string  `json:"enumOptions,omitempty"`
}

// Editable reports whether the console renders an input for the field.
func (f Field) Editable() bool { return !f.IsReadOnly }

func stockOptions() []string {
	out := make([]string, len(model.Stocks))
	for i, s := range model.Stocks {
		out[i] = string(s)
	}
	return out
}

// Schema is the console configuration keyed by entity name.
var Schema = map[string][]Field{
	"User": {
		{Name: "id", Type: TypeString, Label: "Id", IsReadOnly: true},
		{Name: "name", Type: TypeString, Label: "User Name"},
		{Name: "email", Type: TypeString, Label: "Email"},
		{Name: "password", Type: TypeString, Label: "Password"},
		{Name: "createdAt", Type: TypeDatetime, Label: "Created At", IsReadOnly: true},
	},
	"Place": {
		{Name: "identifier", Type: TypeString, Label: "Identifier"},
		{Name: "name", Type: TypeString, Label: "Name"},
		{Name: "lng", Type: TypeFloat, Label: "Longitude"},
		{Name: "lat", Type: TypeFloat, Label: "Latitude"},
	},
	"Cheapie": {
		{Name: "id", Type: TypeInt, Label: "ID", IsReadOnly: true},
		{Name: "name", Type: TypeString, Label: "Name"},
		{Name: "store", Type: TypeString, Label: "Store Identifier"},
		{Name: "quantity", Type: TypeInt, Label: "Quantity"},
		{Name: "price", Type: TypeFloat, Label: "Price"},
		{Name: "exp", Type: TypeDatetime, Label: "Expiration Date", IsOptional: true},
		{Name: "addBy", Type: TypeString, Label: "Add By", IsReadOnly: true},
		{Name: "image", Type: TypeImageURL, Label: "Image", IsFile: true, IsOptional: true},
		{Name: "stock", Type: TypeEnum, Label: "Stock Level", EnumOptions: stockOptions()},
		{Name: "createdAt", Type: TypeDatetime, Label: "Created At", IsReadOnly: true},
	},
}

// Lookup returns the fields of an entity.
func Lookup(entity string) ([]Field, bool) {
	f, ok := Schema[entity]
	return f, ok
}

// Entities lists entity names alphabetically.
func Entities() []string {
	out := make([]string, 0, len(Schema))
	for k := range Schema {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Key is the identifying field of an entity.
func Key(entity string) (Field, bool) {
	f, ok := Schema[entity]
	if !ok || len(f) == 0 {
		return Field{}, false
	}
	return f[0], true
}
