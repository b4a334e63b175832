package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField_Validate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr string
	}{
		{
			name:  "valid text field",
			field: Field{Name: "title", Kind: FieldText},
		},
		{
			name:  "valid text field with options",
			field: Field{Name: "title", Kind: FieldText, Text: &TextOptions{Max: 120}},
		},
		{
			name:    "missing name",
			field:   Field{Kind: FieldText},
			wantErr: "name is required",
		},
		{
			name:    "unknown kind",
			field:   Field{Name: "x", Kind: "blob"},
			wantErr: "unknown kind",
		},
		{
			name:    "mismatched options variant",
			field:   Field{Name: "x", Kind: FieldText, Select: &SelectOptions{}},
			wantErr: "select options set on text field",
		},
		{
			name:    "relation options on file field",
			field:   Field{Name: "x", Kind: FieldFile, Relation: &RelationOptions{}},
			wantErr: "relation options set on file field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestCollection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		col     Collection
		wantErr string
	}{
		{
			name: "valid",
			col: Collection{
				Name:   "posts",
				Kind:   KindBase,
				Fields: []Field{{Name: "title", Kind: FieldText}},
			},
		},
		{
			name:    "missing name",
			col:     Collection{Kind: KindBase},
			wantErr: "name is required",
		},
		{
			name:    "reserved underscore prefix",
			col:     Collection{Name: "_admin", Kind: KindBase},
			wantErr: "reserved",
		},
		{
			name:    "unknown kind",
			col:     Collection{Name: "posts", Kind: "table"},
			wantErr: "unknown kind",
		},
		{
			name: "duplicate field names",
			col: Collection{
				Name: "posts",
				Kind: KindBase,
				Fields: []Field{
					{Name: "title", Kind: FieldText},
					{Name: "title", Kind: FieldText},
				},
			},
			wantErr: "duplicate field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.col.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Validate(t *testing.T) {
	t.Run("rejects duplicate collection names", func(t *testing.T) {
		reg := Registry{
			{Name: "posts", Kind: KindBase},
			{Name: "posts", Kind: KindBase},
		}
		assert.ErrorContains(t, reg.Validate(), "duplicate collection")
	})

	t.Run("accepts distinct collections", func(t *testing.T) {
		reg := Registry{
			{Name: "posts", Kind: KindBase},
			{Name: "users_ext", Kind: KindAuth},
		}
		assert.NoError(t, reg.Validate())
	})
}

func TestConfig_IsValidSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"Default", SourceDefault, true},
		{"File", SourceFile, true},
		{"Storage", SourceStorage, true},
		{"Invalid", "http", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Source: tt.source}
			assert.Equal(t, tt.want, c.IsValidSource())
		})
	}
}
